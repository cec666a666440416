// Package web is the HTML form front end: the same operations as the text
// menu, exposed as forms and tables.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/stadium-booking/internal/booking"
	"github.com/example/stadium-booking/internal/facility"
	"github.com/example/stadium-booking/internal/manager"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	Manager *manager.Manager
	Flash   *FlashStore
	Log     *slog.Logger

	// optional; mounted at MetricsPath when set
	Metrics     http.Handler
	MetricsPath string
}

type tmplData struct {
	Title string
	Flash Flash

	Facilities []manager.FacilityView
	Bookings   []booking.Booking
	Today      string
	UnitPool   int
	Filter     string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, s.MetricsPath, s.Metrics)
	}

	r.Get("/", s.handleHome)
	r.Get("/facilities", s.handleFacilities)
	r.Post("/facilities", s.handleFacilityCreate)
	r.Get("/facilities/{name}/available", s.handleAvailable)
	r.Get("/bookings", s.handleBookings)
	r.Post("/bookings", s.handleBookingCreate)
	r.Post("/bookings/cancel", s.handleBookingCancel)

	return r
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger().Info("http request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "templates/home.html", tmplData{
		Title:      "Stadium Booking Management System",
		Facilities: s.Manager.Facilities(),
		Bookings:   s.Manager.Bookings(),
	})
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "templates/facilities.html", tmplData{
		Title:      "Facilities",
		Facilities: s.Manager.Facilities(),
		UnitPool:   s.Manager.UnitPool(),
	})
}

// handleAvailable reports the facility's capacity minus its booked units as plain text.
func (s *Server) handleAvailable(w http.ResponseWriter, r *http.Request) {
	n, err := s.Manager.AvailableUnits(chi.URLParam(r, "name"))
	if errors.Is(err, manager.ErrFacilityNotFound) {
		http.Error(w, manager.Message(err), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%d\n", n)
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	data := tmplData{
		Title:      "Bookings",
		Facilities: s.Manager.Facilities(),
		Bookings:   s.Manager.Bookings(),
		Today:      s.Manager.Today().Format(booking.DateFormat),
	}
	if name := strings.TrimSpace(r.URL.Query().Get("facility")); name != "" {
		data.Title = "Bookings for " + name
		data.Filter = name
		data.Bookings = s.Manager.BookingsFor(name)
	}
	s.render(w, r, "templates/bookings.html", data)
}

func (s *Server) handleFacilityCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	capStr := strings.TrimSpace(r.FormValue("capacity"))
	if name == "" || capStr == "" {
		s.redirect(w, r, "/facilities", Flash{Message: "All fields are required.", Error: true})
		return
	}
	capacity, err := strconv.Atoi(capStr)
	if err != nil {
		s.redirect(w, r, "/facilities", Flash{Message: "Capacity must be a valid number.", Error: true})
		return
	}
	kind, err := facility.ParseKind(r.FormValue("type"))
	if err != nil {
		s.redirect(w, r, "/facilities", Flash{Message: manager.Message(err), Error: true})
		return
	}

	f, err := s.Manager.AddFacility(manager.AddFacilityRequest{
		Name:         name,
		Capacity:     capacity,
		Kind:         kind,
		SeatType:     r.FormValue("seat_type"),
		HasProjector: r.FormValue("has_projector") != "",
	})
	if err != nil {
		s.redirect(w, r, "/facilities", Flash{Message: manager.Message(err), Error: true})
		return
	}
	s.redirect(w, r, "/facilities", Flash{Message: manager.FacilityAddedMessage(f)})
}

func (s *Server) handleBookingCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := manager.BookingRequest{
		Facility: strings.TrimSpace(r.FormValue("facility")),
		Date:     strings.TrimSpace(r.FormValue("date")),
		Time:     strings.TrimSpace(r.FormValue("time")),
	}
	unitsStr := strings.TrimSpace(r.FormValue("units"))
	if req.Facility == "" || req.Date == "" || req.Time == "" || unitsStr == "" {
		s.redirect(w, r, "/bookings", Flash{Message: "All fields are required.", Error: true})
		return
	}
	units, err := strconv.Atoi(unitsStr)
	if err != nil {
		s.redirect(w, r, "/bookings", Flash{Message: manager.Message(booking.ErrInvalidUnits), Error: true})
		return
	}
	req.Units = units

	b, err := s.Manager.MakeBooking(req)
	if err != nil {
		s.redirect(w, r, "/bookings", Flash{Message: manager.Message(err), Error: true})
		return
	}
	s.redirect(w, r, "/bookings", Flash{Message: manager.BookedMessage(b)})
}

func (s *Server) handleBookingCancel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if id := strings.TrimSpace(r.FormValue("id")); id != "" {
		if s.Manager.CancelBookingByID(id) {
			s.redirect(w, r, "/bookings", Flash{Message: "Booking canceled successfully!"})
		} else {
			s.redirect(w, r, "/bookings", Flash{Message: "No matching booking found.", Error: true})
		}
		return
	}

	req := manager.CancelRequest{
		Facility: strings.TrimSpace(r.FormValue("facility")),
		Date:     strings.TrimSpace(r.FormValue("date")),
		Time:     strings.TrimSpace(r.FormValue("time")),
	}
	if req.Facility == "" || req.Date == "" || req.Time == "" {
		s.redirect(w, r, "/bookings", Flash{Message: "All fields are required.", Error: true})
		return
	}
	b, found, err := s.Manager.CancelBooking(req)
	if err != nil {
		s.redirect(w, r, "/bookings", Flash{Message: manager.Message(err), Error: true})
		return
	}
	s.redirect(w, r, "/bookings", Flash{Message: manager.CancelledMessage(b, found), Error: !found})
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, to string, f Flash) {
	if err := s.Flash.Set(w, f); err != nil {
		s.logger().Error("set flash", "err", err)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data tmplData) {
	if f, ok := s.Flash.Pop(w, r); ok {
		data.Flash = f
	}
	t, err := template.ParseFS(templateFS,
		"templates/base.html",
		name,
	)
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
	}
}

func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
