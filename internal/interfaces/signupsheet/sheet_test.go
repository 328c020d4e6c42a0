package signupsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

func TestRender_TwentyRowsAndEscaping(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := NewRenderer().Render(&out, Sheet{TeamID: "team-1", TeamName: "Lions <FC>", Organiser: "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := out.String()
	if got := strings.Count(html, `<tr class="row">`); got != Rows {
		t.Fatalf("expected %d rows, got %d", Rows, got)
	}
	if !strings.Contains(html, "Lions &lt;FC&gt;") {
		t.Fatalf("expected escaped team name in output")
	}
	if !strings.Contains(html, "Ada") {
		t.Fatalf("expected organiser in output")
	}
	if strings.Contains(html, "<img") {
		t.Fatalf("expected no logo without WithLogoPNG")
	}
}

func TestRender_BlankOrganiserLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := NewRenderer(WithLogoPNG([]byte{0x89, 'P', 'N', 'G'})).Render(&out, Sheet{TeamName: "Lions"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if !strings.Contains(html, "<strong>Coach / Manager:</strong> ____________________") {
		t.Fatalf("expected blank organiser line")
	}
	if !strings.Contains(html, `src="data:image/png;base64,`) {
		t.Fatalf("expected embedded logo")
	}
}

func TestDecodeFile_LegacyFields(t *testing.T) {
	t.Parallel()

	input := `[{"id":"t1","teamName":"Lions","managerName":"Ada"},{"id":"t2","name":"Tigers","coach":"Bo"}]`
	sheets, err := DecodeFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %d", len(sheets))
	}
	if sheets[1].TeamName != "Tigers" || sheets[1].Organiser != "Bo" {
		t.Fatalf("unexpected legacy sheet: %+v", sheets[1])
	}

	filtered := Filter(sheets, "Tigers")
	if len(filtered) != 1 || filtered[0].TeamID != "t2" {
		t.Fatalf("expected filter by name to keep t2, got %+v", filtered)
	}
	if got := Filter(sheets, "t1"); len(got) != 1 || got[0].TeamName != "Lions" {
		t.Fatalf("expected filter by id to keep t1, got %+v", got)
	}
}

func TestFileNameAndFromTeam(t *testing.T) {
	t.Parallel()

	s := FromTeam(team.Team{ID: "t9", LegacyName: "Blue/Stars", ManagerName: " Kim "})
	if s.TeamName != "Blue/Stars" || s.Organiser != "Kim" {
		t.Fatalf("unexpected sheet: %+v", s)
	}
	if got := FileName(s); got != "Blue_Stars-signup.html" {
		t.Fatalf("unexpected file name %q", got)
	}
	if got := FileName(Sheet{}); got != "team-signup.html" {
		t.Fatalf("unexpected fallback file name %q", got)
	}
}
