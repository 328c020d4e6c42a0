// Package signupsheet renders the printable player sign-up sheet handed to
// each team at the venue.
package signupsheet

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/valyala/bytebufferpool"
)

// Rows is the number of numbered player lines on a sheet.
const Rows = 20

const defaultEventName = "Dickson Super Cup Classic"

// Sheet is the data printed on one sign-up sheet.
type Sheet struct {
	TeamID    string
	TeamName  string
	Organiser string
}

// FileTeam is a team document as exported to a JSON file. Older exports used
// name, coach or manager instead of teamName and managerName.
type FileTeam struct {
	ID          string `json:"id"`
	TeamName    string `json:"teamName"`
	Name        string `json:"name"`
	ManagerName string `json:"managerName"`
	Coach       string `json:"coach"`
	Manager     string `json:"manager"`
}

func (t FileTeam) Sheet() Sheet {
	return Sheet{
		TeamID:    t.ID,
		TeamName:  firstNonEmpty(t.TeamName, t.Name),
		Organiser: firstNonEmpty(t.ManagerName, t.Coach, t.Manager),
	}
}

// FromTeam builds a sheet from a stored team.
func FromTeam(t team.Team) Sheet {
	return Sheet{
		TeamID:    t.ID,
		TeamName:  firstNonEmpty(t.TeamName, t.LegacyName),
		Organiser: strings.TrimSpace(t.ManagerName),
	}
}

// DecodeFile reads a JSON array of exported team documents.
func DecodeFile(r io.Reader) ([]Sheet, error) {
	var teams []FileTeam
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&teams); err != nil {
		return nil, fmt.Errorf("decode teams file: %w", err)
	}
	out := make([]Sheet, 0, len(teams))
	for _, item := range teams {
		out = append(out, item.Sheet())
	}
	return out, nil
}

// Filter keeps sheets whose team id or team name equals selector. An empty
// selector keeps everything.
func Filter(sheets []Sheet, selector string) []Sheet {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return sheets
	}
	out := make([]Sheet, 0, 1)
	for _, s := range sheets {
		if s.TeamID == selector || s.TeamName == selector {
			out = append(out, s)
		}
	}
	return out
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9\-_ ]`)

// FileName is the output file name for a sheet.
func FileName(s Sheet) string {
	name := s.TeamName
	if name == "" {
		name = "team"
	}
	return unsafeFileChars.ReplaceAllString(name, "_") + "-signup.html"
}

// Renderer writes sheets as print-ready HTML.
type Renderer struct {
	tmpl      *template.Template
	eventName string
	logoURL   template.URL
}

type Option func(*Renderer)

// WithLogoPNG embeds a PNG logo as a data URL.
func WithLogoPNG(png []byte) Option {
	return func(r *Renderer) {
		if len(png) == 0 {
			return
		}
		r.logoURL = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}
}

func WithEventName(name string) Option {
	return func(r *Renderer) {
		if name = strings.TrimSpace(name); name != "" {
			r.eventName = name
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		tmpl:      template.Must(template.New("sheet").Parse(sheetTemplate)),
		eventName: defaultEventName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type sheetView struct {
	Event     string
	Logo      template.URL
	TeamName  string
	Organiser string
	Rows      []int
}

// Render executes the template into a pooled buffer before writing, so a
// template error never leaves a partial sheet in w.
func (r *Renderer) Render(w io.Writer, s Sheet) error {
	rows := make([]int, Rows)
	for i := range rows {
		rows[i] = i + 1
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	view := sheetView{
		Event:     r.eventName,
		Logo:      r.logoURL,
		TeamName:  s.TeamName,
		Organiser: s.Organiser,
		Rows:      rows,
	}
	if err := r.tmpl.Execute(buf, view); err != nil {
		return fmt.Errorf("render sheet for team %s: %w", s.TeamID, err)
	}
	if _, err := w.Write(buf.B); err != nil {
		return fmt.Errorf("write sheet for team %s: %w", s.TeamID, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

const sheetTemplate = `<!doctype html>
<html><head><meta charset="utf-8"><title>{{.TeamName}} - Signup</title>
<style>
@page { size: A4; margin: 12mm }
body { font-family: "Segoe UI", Roboto, Arial, Helvetica, sans-serif; margin: 0; color: #111 }
.page { width: 210mm; padding: 8mm 12mm; background: #fff }
header { display: flex; align-items: center; gap: 12px; border-bottom: 6px solid #ffd400; padding-bottom: 8px }
.logo img { width: 72px; height: 72px; object-fit: contain }
h1 { font-size: 22px; margin: 0; color: #d32f2f; font-weight: 800 }
.subtitle { font-size: 12px; color: #444 }
.meta { display: flex; justify-content: space-between; margin-top: 10px; font-size: 13px }
table { width: 100%; border-collapse: collapse; margin-top: 12px }
th, td { padding: 8px 6px; border-bottom: 1px dashed rgba(0,0,0,0.08); font-size: 13px }
thead th { background: #e53935; color: #fff; font-weight: 700 }
td .line { display: block; height: 14px; border-bottom: 1px solid rgba(0,0,0,0.2) }
</style></head>
<body><div class="page">
<header>
<div class="logo">{{if .Logo}}<img src="{{.Logo}}" alt="logo">{{end}}</div>
<div style="flex:1"><h1>{{.Event}}</h1><div class="subtitle">Player Sign-up. Please fill clearly. One row per player.</div></div>
</header>
<div class="meta">
<div><strong>Date:</strong> ____________________</div>
<div><strong>Club / Team:</strong> {{.TeamName}}
<div><strong>Coach / Manager:</strong> {{if .Organiser}}{{.Organiser}}{{else}}____________________{{end}}</div></div>
</div>
<table>
<thead><tr><th>No.</th><th>Player Name</th><th>Area</th><th>Team</th><th>Phone</th><th>ID No</th><th>Signature</th></tr></thead>
<tbody>
{{range .Rows}}<tr class="row"><td style="text-align:center">{{.}}</td><td><span class="line"></span></td><td><span class="line"></span></td><td><span class="line"></span></td><td><span class="line"></span></td><td><span class="line"></span></td><td><span class="line"></span></td></tr>
{{end}}</tbody>
</table>
</div></body></html>
`
