package app

import (
	"log"
)

// registerRoutes wires the controllers onto the echo instance.
func (s *Server) registerRoutes() {
	c := s.container

	// Inbound webhooks. The deploy hook carries its own HMAC verification;
	// the slash-command hook relies on the chat platform's delivery
	// guarantees and is not independently re-verified.
	s.echo.POST("/hooks/github", c.DeployWebhookController.HandlePush)
	s.echo.POST("/hooks/slack/command", c.SlackCommandController.HandleCommand)

	// Query surface.
	s.echo.GET("/environments", c.EnvironmentsController.ListActive)
	s.echo.POST("/environments/autoclaim", c.EnvironmentsController.AutoClaim)

	s.echo.GET("/health", c.HealthController.HealthCheck)

	log.Printf("Registered routes for %s, %s, %s, %s",
		c.DeployWebhookController.GetName(),
		c.SlackCommandController.GetName(),
		c.EnvironmentsController.GetName(),
		c.HealthController.GetName())
}
