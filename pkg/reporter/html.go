package reporter

import (
	"html/template"
	"io"

	"github.com/neulab/globalbench/pkg/core"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

func (r HTMLReporter) Report(board core.Leaderboard) error {
	title := r.Title
	if title == "" {
		title = board.BenchmarkName + " Leaderboard"
	}

	type viewData struct {
		Name    string
		Columns []string
		Rows    []struct {
			Name   string
			Scores []float64
		}
	}
	views := make([]viewData, 0, len(board.Views))
	for _, view := range board.Views {
		vd := viewData{Name: view.Name, Columns: flattenColumns(view.ColumnNames)}
		for i, name := range view.RowNames {
			vd.Rows = append(vd.Rows, struct {
				Name   string
				Scores []float64
			}{Name: name, Scores: view.Scores[i]})
		}
		views = append(views, vd)
	}

	data := struct {
		Title string
		Board core.Leaderboard
		Views []viewData
	}{
		Title: title,
		Board: board,
		Views: views,
	}

	tpl := template.Must(template.New("leaderboard").Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    .meta { margin-bottom: 12px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div class="meta">
    <div><strong>Benchmark:</strong> {{ .Board.BenchmarkID }}</div>
    <div><strong>Generated:</strong> {{ .Board.GeneratedAt.Format "2006-01-02 15:04:05" }}</div>
  </div>
  {{ range .Views }}
  <h2>{{ .Name }}</h2>
  <table>
    <tr><th>System</th>{{ range .Columns }}<th>{{ . }}</th>{{ end }}</tr>
    {{ range .Rows }}
    <tr>
      <td>{{ .Name }}</td>
      {{ range .Scores }}<td>{{ printf "%.4f" . }}</td>{{ end }}
    </tr>
    {{ end }}
  </table>
  {{ end }}
</body>
</html>
`
