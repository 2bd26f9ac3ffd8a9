package html

// CommandReferenceTemplate renders the command reference page
const CommandReferenceTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Command Reference</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }

        header {
            background: linear-gradient(135deg, #012456 0%, #2b5797 100%);
            color: white;
            padding: 32px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
        }

        header h1 { font-size: 2.2em; margin-bottom: 6px; }

        .summary, .command {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 24px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .stats { display: flex; gap: 32px; }
        .stat .value { font-size: 1.8em; font-weight: bold; color: #2b5797; }
        .stat .label { color: #7f8c8d; font-size: 0.9em; }

        .toc a { color: #2b5797; text-decoration: none; margin-right: 12px; }

        .command h2 { font-family: Consolas, Menlo, monospace; color: #012456; }
        .command h3 { margin: 16px 0 8px; font-size: 1.05em; color: #34495e; }
        .type-name { color: #7f8c8d; font-size: 0.9em; }
        .undocumented { color: #95a5a6; font-style: italic; }

        pre.syntax {
            background: #012456;
            color: #eeedf0;
            padding: 10px 14px;
            border-radius: 4px;
            margin-bottom: 6px;
            white-space: pre-wrap;
        }

        table { width: 100%; border-collapse: collapse; font-size: 0.92em; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ecf0f1; vertical-align: top; }
        th { background: #f8f9fa; color: #34495e; }
        .param-name { font-family: Consolas, Menlo, monospace; font-weight: bold; }
        .param-type { font-family: Consolas, Menlo, monospace; color: #8e44ad; }
        .required { color: #d32f2f; font-weight: bold; }
        .set-badge {
            display: inline-block;
            background: #e8eef7;
            color: #2b5797;
            border-radius: 3px;
            padding: 0 6px;
            font-size: 0.85em;
        }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{.Title}}</h1>
        <p>Command reference</p>
    </header>

    <div class="summary">
        <div class="stats">
            <div class="stat"><div class="value">{{.Summary.Commands}}</div><div class="label">Commands</div></div>
            <div class="stat"><div class="value">{{.Summary.Documented}}</div><div class="label">Documented</div></div>
            <div class="stat"><div class="value">{{.Summary.Parameters}}</div><div class="label">Parameters</div></div>
        </div>
        {{if .Commands}}
        <p class="toc">{{range .Commands}}<a href="#{{.Name}}">{{.Name}}</a>{{end}}</p>
        {{end}}
    </div>

    {{range .Commands}}
    <div class="command" id="{{.Name}}">
        <h2>{{.Name}}</h2>
        <div class="type-name">{{.TypeName}}</div>

        <h3>Synopsis</h3>
        {{if .Synopsis}}{{range .Synopsis}}<p>{{.}}</p>{{end}}{{else}}<p class="undocumented">No synopsis.</p>{{end}}

        <h3>Syntax</h3>
        {{$cmd := .Name}}
        {{range .Syntax}}
        {{with setName .Set}}<span class="set-badge">{{.}}</span>{{end}}
        <pre class="syntax">{{syntaxLine $cmd .}}</pre>
        {{end}}

        {{if .Description}}
        <h3>Description</h3>
        {{range .Description}}<p>{{.}}</p>{{end}}
        {{end}}

        {{if .Parameters}}
        <h3>Parameters</h3>
        <table>
            <thead>
            <tr><th>Name</th><th>Type</th><th>Required</th><th>Position</th><th>Pipeline Input</th><th>Description</th></tr>
            </thead>
            <tbody>
            {{range .Parameters}}
            <tr>
                <td class="param-name">-{{.Name}}{{if .Aliases}}<br><small>Aliases: {{join .Aliases ", "}}</small>{{end}}</td>
                <td class="param-type">{{.Type}}</td>
                <td>{{if .Required}}<span class="required">Yes</span>{{else}}No{{end}}</td>
                <td>{{.Position}}</td>
                <td>{{.PipelineInput}}</td>
                <td>{{range .Description}}<p>{{.}}</p>{{end}}</td>
            </tr>
            {{end}}
            </tbody>
        </table>
        {{end}}

        {{if .Inputs}}<h3>Inputs</h3><p class="param-type">{{join .Inputs ", "}}</p>{{end}}
        {{if .Outputs}}<h3>Outputs</h3><p class="param-type">{{join .Outputs ", "}}</p>{{end}}
    </div>
    {{else}}
    <div class="command"><p class="undocumented">No commands found.</p></div>
    {{end}}
</div>
</body>
</html>
`
