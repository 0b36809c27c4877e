package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the blog service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>blog-service Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document for the blog endpoints. Write routes accept a bearer token
// and require one when AUTH_REQUIRED is set.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "blog-service", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "BlogInput": { "type": "object", "required": ["title","content","author"], "properties": { "title": {"type":"string"}, "content": {"type":"string"}, "author": {"type":"string"} } },
      "BlogPost": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"}, "author": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"} } },
      "UpdatedBlogPost": { "type": "object", "properties": { "id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"}, "author": {"type":"string"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Error": { "type": "object", "properties": { "message": {"type":"string"}, "error": {"type":"string"} } }
    }
  },
  "paths": {
    "/blogs": {
      "get": { "summary": "List blog posts", "responses": { "200": { "description": "all posts", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/BlogPost" } } } } }, "500": { "description": "store failure" } } },
      "post": {
        "summary": "Create a blog post",
        "security": [ { "bearer": [] } ],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogInput" } } } },
        "responses": { "201": { "description": "created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogPost" } } } }, "400": { "description": "missing fields" }, "401": { "description": "no token" }, "403": { "description": "invalid token" }, "500": { "description": "store failure" } }
      }
    },
    "/blogs/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": { "summary": "Get a blog post", "responses": { "200": { "description": "post", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogPost" } } } }, "404": { "description": "not found" }, "500": { "description": "store failure or malformed id" } } },
      "put": {
        "summary": "Replace a blog post",
        "security": [ { "bearer": [] } ],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/BlogInput" } } } },
        "responses": { "200": { "description": "updated", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/UpdatedBlogPost" } } } }, "400": { "description": "missing fields" }, "404": { "description": "not found" }, "500": { "description": "store failure or malformed id" } }
      },
      "delete": { "summary": "Delete a blog post", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" }, "500": { "description": "store failure or malformed id" } } }
    },
    "/start": { "get": { "summary": "Greeting", "responses": { "200": { "description": "Hello World!" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition" } } } }
  }
}`
