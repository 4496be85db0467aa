package render

import (
	"bytes"
	"fmt"
	"html/template"
)

var compiledTemplate = template.Must(template.New("chart").Parse(htmlTemplate))

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "breadthfirst", "force", "circle", or "grid"
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"breadthfirst", "force", "circle", "grid"}

// GenerateHTML generates a self-contained Cytoscape.js page for the chart.
func GenerateHTML(data *GraphData, opts HTMLOptions) (string, error) {
	if data == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	layout, err := layoutToCytoscape(opts.Layout)
	if err != nil {
		return "", err
	}

	graphJSON, err := data.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = compiledTemplate.Execute(&buf, templateData{
		Title:     data.Title,
		Root:      data.Root,
		GraphJSON: template.JS(graphJSON),
		Layout:    layout,
		Empty:     data.IsEmpty(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type templateData struct {
	Title     string
	Root      string
	GraphJSON template.JS
	Layout    string
	Empty     bool
}

// layoutToCytoscape converts user-facing layout names to Cytoscape.js names.
func layoutToCytoscape(layout string) (string, error) {
	switch layout {
	case "", "breadthfirst":
		return "breadthfirst", nil
	case "force":
		return "cose", nil
	case "circle", "grid":
		return layout, nil
	default:
		return "", fmt.Errorf("invalid layout %q: must be breadthfirst, force, circle, or grid", layout)
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    h1 {
      position: absolute;
      margin: 12px 16px;
      font-size: 18px;
      color: #333;
      z-index: 10;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 6px 10px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    .empty-state {
      text-align: center;
      color: #666;
      padding-top: 40vh;
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{- if .Empty}}
  <div class="empty-state"><h2>No schools in this chart</h2></div>
{{- else}}
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = {{.Layout}};
      const root = {{.Root}};

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'label': 'data(caption)',
              'text-wrap': 'wrap',
              'background-color': '#7F8C8D',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': '60px',
              'height': '60px'
            }
          },
          {
            selector: 'node[logo]',
            style: {
              'label': '',
              'background-color': 'white',
              'background-image': 'data(logo)',
              'background-fit': 'contain',
              'shape': 'rectangle'
            }
          },
          {
            selector: 'node[?root]',
            style: {
              'border-width': 3,
              'border-color': '#E8923A'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-color': '#95A5A6',
              'target-arrow-shape': 'triangle',
              'curve-style': 'bezier',
              'width': 2
            }
          },
          {
            selector: '.dimmed',
            style: {
              'opacity': 0.25
            }
          }
        ],
        layout: {
          name: layout,
          directed: true,
          roots: root ? [cy_id(root)] : undefined,
          spacingFactor: 1.2,
          animate: false
        }
      });

      function cy_id(name) {
        return '#' + CSS.escape(name);
      }

      const tooltip = document.getElementById('tooltip');

      cy.on('mouseover', 'node', function(evt) {
        const data = evt.target.data();
        tooltip.textContent = data.tooltip;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      // Tap a school to show only who it beat and who beat it.
      cy.on('tap', 'node', function(evt) {
        const neighborhood = evt.target.closedNeighborhood();
        cy.elements().removeClass('dimmed');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('dimmed');
        }
      });
    })();
  </script>
{{- end}}
</body>
</html>`
