package static

import (
	"strconv"
	"strings"
)

// Page returns the head of the page with the form filled in.
func Page(sites int, seed int64, random bool) string {
	checked := ""
	if random {
		checked = "checked"
	}
	q := "sites=" + strconv.Itoa(sites) + "&amp;seed=" + strconv.FormatInt(seed, 10) + "&amp;random=" + strconv.FormatBool(random)
	return strings.NewReplacer(
		"{{sites}}", strconv.Itoa(sites),
		"{{seed}}", strconv.FormatInt(seed, 10),
		"{{checked}}", checked,
		"{{query}}", q,
	).Replace(Part1)
}

var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Voronoi diagram</title>
		<style>
			body {
				background-color: #1F1F1F;
				color: #d3d3d3;
				font-family: Consolas, monospace;
				overflow: hidden;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
			}

			#right-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575;
				overflow-y: auto;
				overflow-x: auto;
				background-color: #1e1e1e;
			}

			#logs {
				white-space: pre-wrap;
				word-wrap: break-word;
				color: #d3d3d3;
				font-family: Consolas, monospace;
			}

			#chart-container {
				width: 100%;
				height: 400px;
			}

			input[type="number"],
			input[type="submit"] {
				background-color: #2b2b2b;
				color: #d3d3d3;
				border: 1px solid #444;
				padding: 5px;
				margin: 5px 0;
				border-radius: 4px;
			}

			label {
				color: #d3d3d3;
			}

			h1 {
				color: #d3d3d3;
			}

			input[type="submit"]:hover {
				background-color: #444;
				cursor: pointer;
			}

			/* dark scrollbars */
			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444;
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b;
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>Voronoi diagram parameters</h1>
                <form id="diagram-form" method="POST">
                    <label for="sites">Sites (n):</label>
                    <input type="number" id="sites" name="sites" value="{{sites}}" min="0" max="2000"><br><br>
                    <label for="seed">Seed:</label>
                    <input type="number" id="seed" name="seed" value="{{seed}}"><br><br>
                    <label for="random">Random sites:</label>
                    <input type="checkbox" id="random" name="random" value="true" {{checked}}><br><br>
                    <input type="submit" value="Build">
                </form>
                <p><a href="/svg?{{query}}">SVG</a> | <a href="/png?{{query}}">PNG</a></p>
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Build log</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>

        <script>
            document.getElementById('diagram-form').addEventListener('submit', function (e) {
                e.preventDefault();
                const formData = new FormData(this);
                const params = new URLSearchParams(formData).toString();

                                fetch('/', {
                    method: 'POST',
                    body: params,
                    headers: {
                        'Content-Type': 'application/x-www-form-urlencoded'
                    }
                })
                .then(response => {
                    if (!response.ok) {
                        throw new Error('form submission failed');
                    }
                    return response.text();
                })
                .then(html => {
                    document.open();
                    document.write(html);
                    document.close();
                })
                .catch(error => {
                    console.error('error:', error);
                });
            });
        </script>
    </body>
    </html>
    `
)
