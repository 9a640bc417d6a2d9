package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(
	r *chi.Mux,
	adminAuthHandler *AdminAuthHandler,
	guestHandler *GuestHandler,
	lookupHandler *LookupHandler,
	responseHandler *ResponseHandler,
	notificationHandler *NotificationHandler,
	exportHandler *ExportHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Wedding RSVP API", "1.0.0")
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Get(api, "/api/guests/search", lookupHandler.HandleSearch)
	huma.Get(api, "/api/guests/surname/{surname}", lookupHandler.HandleSurname)
	huma.Get(api, "/api/guests/confirm/{code}", lookupHandler.HandleConfirm)
	huma.Get(api, "/api/guests/cached-code", lookupHandler.HandleCachedCode)
	huma.Put(api, "/api/guests/response/{id}", responseHandler.HandleSingle)
	huma.Put(api, "/api/guests/family/response", responseHandler.HandleFamily)

	// Admin routes (shared-secret key checked inside each handler)
	huma.Post(api, "/api/admin/auth", adminAuthHandler.HandleAuth)
	huma.Get(api, "/api/guests", guestHandler.HandleList)
	huma.Post(api, "/api/guests", guestHandler.HandleCreate, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Put(api, "/api/guests/{id}", guestHandler.HandleUpdate)
	huma.Delete(api, "/api/guests/delete/{id}", guestHandler.HandleDelete)
	huma.Get(api, "/api/admin/notifications/recipients", notificationHandler.HandleRecipients)
	huma.Post(api, "/api/admin/notifications/send", notificationHandler.HandleSend)
	huma.Get(api, "/api/admin/export-participations", exportHandler.HandleParticipations)
	huma.Get(api, "/api/admin/export-participations/report", exportHandler.HandleReport)
}
