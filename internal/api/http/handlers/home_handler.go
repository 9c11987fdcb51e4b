package handlers

import "github.com/gofiber/fiber/v2"

const marketingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Commerce Service</title>
</head>
<body>
  <h1>Commerce Service</h1>
  <p>Marketplace backend. See /api for the service endpoints.</p>
</body>
</html>`

// HomeHandler serves the one-page marketing stub.
type HomeHandler struct{}

// NewHomeHandler constructs handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index handles GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(marketingPage)
}
