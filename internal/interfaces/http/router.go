package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/swiftstock-api/internal/application/assistant"
	"github.com/jhoicas/swiftstock-api/internal/application/lateral"
	"github.com/jhoicas/swiftstock-api/internal/application/network"
	"github.com/jhoicas/swiftstock-api/internal/application/procurement"
	"github.com/jhoicas/swiftstock-api/internal/domain/entity"
	"github.com/jhoicas/swiftstock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Facilities  repository.FacilityRepository
	Network     *network.UseCase
	Lateral     *lateral.Matcher
	Procurement *procurement.UseCase
	Assistant   *assistant.Assistant
	Sessions    *assistant.SessionStore
	JWTSecret   string // vacío = /api sin autenticación (demo local)
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Con secret: Bearer Token en todo /api y RBAC en el PDF de compras.
	var pdfGuard []fiber.Handler
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
		pdfGuard = append(pdfGuard, RequireRole(entity.RoleAdmin, entity.RoleLogistica))
	}

	facilityHandler := NewFacilityHandler(deps.Facilities)
	api.Get("/facilities", facilityHandler.List)
	api.Get("/facilities/:id", facilityHandler.GetByID)

	netGroup := api.Group("/network")
	networkHandler := NewNetworkHandler(deps.Network)
	netGroup.Get("/status", networkHandler.Status)
	netGroup.Get("/items", networkHandler.Items)
	netGroup.Get("/levels", networkHandler.Levels)
	netGroup.Get("/kpis", networkHandler.KPIs)

	lateralHandler := NewLateralHandler(deps.Lateral)
	api.Get("/lateral-supply", lateralHandler.FindSupply)

	proc := api.Group("/procurement")
	procurementHandler := NewProcurementHandler(deps.Procurement)
	proc.Get("/reorder-list", procurementHandler.ReorderList)
	proc.Get("/reorder-list/pdf", append(pdfGuard, procurementHandler.ReorderPDF)...)

	chat := api.Group("/assistant/sessions")
	assistantHandler := NewAssistantHandler(deps.Assistant, deps.Sessions, deps.Facilities)
	chat.Post("/", assistantHandler.CreateSession)
	chat.Get("/:id", assistantHandler.GetSession)
	chat.Post("/:id/messages", assistantHandler.SendMessage)
}
