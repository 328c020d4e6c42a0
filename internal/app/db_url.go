package app

import (
	"net/url"
	"strings"
)

// postgresTarget is DB_URL prepared for sql.Open plus the database name used
// to label spans.
type postgresTarget struct {
	dsn    string
	dbName string
}

// resolvePostgresTarget accepts both the URL and the keyword=value forms lib/pq
// understands and tags the session with application_name unless the DSN
// already names one.
func resolvePostgresTarget(raw, appName string) postgresTarget {
	raw = strings.TrimSpace(raw)
	appName = strings.TrimSpace(appName)

	if u, err := url.Parse(raw); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		q := u.Query()
		if appName != "" && q.Get("application_name") == "" {
			q.Set("application_name", appName)
			u.RawQuery = q.Encode()
		}
		return postgresTarget{dsn: u.String(), dbName: strings.TrimPrefix(u.Path, "/")}
	}

	keywords := parseKeywordDSN(raw)
	target := postgresTarget{dsn: raw, dbName: keywords["dbname"]}
	if _, named := keywords["application_name"]; !named && appName != "" && raw != "" {
		target.dsn = raw + " application_name=" + quoteKeywordValue(appName)
	}
	return target
}

// parseKeywordDSN reads space separated key=value pairs. Quoted values with
// embedded spaces are not supported; they only matter for span labels here.
func parseKeywordDSN(raw string) map[string]string {
	out := make(map[string]string)
	for _, field := range strings.Fields(raw) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		out[key] = strings.Trim(value, `"'`)
	}
	return out
}

func quoteKeywordValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}
