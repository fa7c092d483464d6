package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%[1]s - API docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body style="margin:0">
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
    SwaggerUIBundle({url: "%[2]s", dom_id: "#swagger-ui", deepLinking: true});
    </script>
</body>
</html>`

// Docs serves an OpenAPI document and a Swagger UI page that renders it.
type Docs struct {
	Title string
	YAML  []byte
}

// Register mounts the document at /swagger/doc.yaml and the UI under /swagger.
func (d Docs) Register(r fiber.Router) {
	const docPath = "/swagger/doc.yaml"
	page := fmt.Sprintf(swaggerPage, d.Title, docPath)

	r.Get(docPath, func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(d.YAML)
	})
	r.Get("/swagger/*", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	})
}
