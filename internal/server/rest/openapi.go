package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

const (
	apiTitle   = "Todo API"
	apiVersion = "1.0"
)

// schemaFor renders the named todo properties as an OpenAPI object schema.
func schemaFor(names []string, required []string) map[string]any {
	props := make(map[string]any, len(names))
	for _, name := range names {
		p, ok := models.LookupProperty(name)
		if !ok {
			continue
		}
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
			"example":     p.Example,
		}
		if p.MinLength > 0 {
			prop["minLength"] = p.MinLength
		}
		if p.MaxLength > 0 {
			prop["maxLength"] = p.MaxLength
		}
		props[name] = prop
	}

	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonContent(schema any) map[string]any {
	return map[string]any{"application/json": map[string]any{"schema": schema}}
}

func response(description string, schema any) map[string]any {
	r := map[string]any{"description": description}
	if schema != nil {
		r["content"] = jsonContent(schema)
	}
	return r
}

// OpenAPIDocument describes the todo routes. The export path is listed only
// when export is enabled.
func OpenAPIDocument(withExport bool) map[string]any {
	all := make([]string, 0, len(models.TodoProperties))
	for _, p := range models.TodoProperties {
		all = append(all, p.Name)
	}

	idParam := map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "integer", "format": "int64"},
	}
	errResp := func(d string) map[string]any { return response(d, ref("Error")) }

	paths := map[string]any{
		"/todo": map[string]any{
			"post": map[string]any{
				"summary":     "Create a todo",
				"operationId": "create",
				"requestBody": map[string]any{"required": true, "content": jsonContent(ref("CreateTodo"))},
				"responses": map[string]any{
					"201": response("The created todo", ref("Todo")),
					"400": errResp("Validation failed"),
				},
			},
			"get": map[string]any{
				"summary":     "List todos, optionally by title prefix",
				"operationId": "findAll",
				"parameters": []any{map[string]any{
					"name":        "title",
					"in":          "query",
					"required":    false,
					"description": "Case-insensitive title prefix",
					"schema":      map[string]any{"type": "string"},
				}},
				"responses": map[string]any{
					"200": response("Matching todos", map[string]any{"type": "array", "items": ref("Todo")}),
				},
			},
		},
		"/todo/{id}": map[string]any{
			"get": map[string]any{
				"summary":     "Get a todo",
				"operationId": "findOne",
				"parameters":  []any{idParam},
				"responses": map[string]any{
					"200": response("The todo", ref("Todo")),
					"400": errResp("Invalid id"),
					"404": errResp("Todo not found"),
				},
			},
			"patch": map[string]any{
				"summary":     "Update a todo",
				"operationId": "update",
				"parameters":  []any{idParam},
				"requestBody": map[string]any{"required": true, "content": jsonContent(ref("UpdateTodo"))},
				"responses": map[string]any{
					"200": response("The updated todo", ref("Todo")),
					"400": errResp("Validation failed"),
					"404": errResp("Todo not found"),
				},
			},
			"delete": map[string]any{
				"summary":     "Delete a todo",
				"operationId": "remove",
				"parameters":  []any{idParam},
				"responses": map[string]any{
					"200": response("Deleted", nil),
					"400": errResp("Invalid id"),
				},
			},
		},
	}

	if withExport {
		paths["/export"] = map[string]any{
			"post": map[string]any{
				"summary":     "Export all todos to object storage",
				"operationId": "export",
				"responses": map[string]any{
					"201": response("Snapshot location", ref("Snapshot")),
					"500": errResp("Storage failure"),
				},
			},
		}
	}

	return map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       apiTitle,
			"description": "The Todo API description",
			"version":     apiVersion,
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": map[string]any{
				"Todo":       schemaFor(all, all),
				"CreateTodo": schemaFor([]string{"title", "description"}, []string{"title", "description"}),
				"UpdateTodo": schemaFor([]string{"title", "description", "complete"}, nil),
				"Snapshot": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":   map[string]any{"type": "string"},
						"url":   map[string]any{"type": "string"},
						"count": map[string]any{"type": "integer"},
					},
				},
				"Error": map[string]any{
					"type":     "object",
					"required": []string{"code", "message"},
					"properties": map[string]any{
						"code":    map[string]any{"type": "string"},
						"message": map[string]any{"type": "string"},
						"details": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
					},
				},
			},
		},
	}
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => { window.ui = SwaggerUIBundle({ url: "%s", dom_id: "#swagger-ui" }); };
  </script>
</body>
</html>
`

func openAPIHandler(doc map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, doc)
	}
}

func swaggerUIHandler(specURL string) http.HandlerFunc {
	page := fmt.Sprintf(swaggerPage, apiTitle, specURL)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}
}
