package workorder

import (
	"html/template"
	"io"
)

var page = template.Must(template.New("workorder").Funcs(template.FuncMap{
	"liters": liters,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Fertilization work order</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #000; padding: 4px; }
td.liters { text-align: right; }
.notes { border: 1px solid #000; height: 60px; margin-top: 20px; }
.signatures { display: flex; justify-content: space-around; margin-top: 60px; }
@media print { button { display: none; } }
</style>
</head>
<body>
<h1>Fertilization work order</h1>
<p class="issued">Issue date: {{.Issued.Format "02/01/2006"}}</p>
<table id="lines">
<thead><tr><th>Date</th><th>Sector</th><th>Valve</th><th>Product</th><th>Liters to apply</th><th>Actual liters</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr><td class="date">{{.Date.Format "2006-01-02"}}</td><td class="sector">{{.Sector}}</td><td class="valve">{{.Valve}}</td><td class="product">{{.Product}}</td><td class="liters">{{liters .Liters}}</td><td></td></tr>
{{- end}}
</tbody>
</table>
<p>Observations:</p>
<div class="notes"></div>
<div class="signatures">
<div>_________________________<br>Farm manager signature</div>
<div>_________________________<br>Operator signature</div>
</div>
<button onclick="window.print()">Print</button>
</body>
</html>
`))

func WriteHTML(w io.Writer, o Order) error { return page.Execute(w, o) }
