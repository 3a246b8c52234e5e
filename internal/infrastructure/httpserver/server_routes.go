package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.root)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	projects := s.echo.Group("/projects", s.middleware.BasicAuth.Handler())
	projects.POST("", s.createProject)
	projects.GET("", s.listProjects)
	projects.GET("/:id", s.getProject)
	projects.PUT("/:id", s.updateProject)
	projects.DELETE("/:id", s.deleteProject)

	places := projects.Group("/:id/places")
	places.GET("", s.listPlaces)
	places.POST("", s.addPlace)
	places.GET("/:place_id", s.getPlace)
	places.PATCH("/:place_id", s.updatePlace)
}
