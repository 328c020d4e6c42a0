package registration

import "testing"

func TestLegacyTeamIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		doc  Legacy
		want string
	}{
		{doc: Legacy{Team: "Lions", TeamID: "t-1", TeamName: "Other"}, want: "Lions"},
		{doc: Legacy{Team: " ", TeamID: "t-1", TeamName: "Other"}, want: "t-1"},
		{doc: Legacy{TeamName: " Hawks "}, want: "Hawks"},
		{doc: Legacy{}, want: ""},
	}
	for _, tc := range cases {
		if got := tc.doc.TeamIdentifier(); got != tc.want {
			t.Fatalf("TeamIdentifier(%+v) = %q, want %q", tc.doc, got, tc.want)
		}
	}
}
