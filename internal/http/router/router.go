// Package router binds the HTTP route table to its handlers and wraps the
// result in the global middleware chain.
//
// Route table:
//
//	POST   /api/students/create               → create a new student
//	GET    /api/students                      → list all students
//	POST   /api/students/details              → find one student (id in body)
//	PUT    /api/students/update/{studentId}   → update a student
//	DELETE /api/students/delete/{studentId}   → delete a student
//	GET    /                                  → static files, or JSON 404
package router

import (
	"net/http"
	"time"

	"github.com/aanand-mishra/students-mongo-api/internal/http/handlers/student"
	"github.com/aanand-mishra/students-mongo-api/internal/http/middleware"
	"github.com/aanand-mishra/students-mongo-api/internal/storage"
	"github.com/aanand-mishra/students-mongo-api/internal/utils/response"
)

// Options tunes the router beyond the route table itself.
type Options struct {
	// StaticDir is served for every non-API GET when non-empty.
	StaticDir string

	// DBTimeout is the per-request deadline; zero disables it.
	DBTimeout time.Duration
}

// New returns the application's root handler.
func New(store storage.Storage, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/students/create", student.New(store))
	mux.HandleFunc("GET /api/students", student.GetList(store))
	mux.HandleFunc("POST /api/students/details", student.GetByID(store))
	mux.HandleFunc("PUT /api/students/update/{studentId}", student.Update(store))
	mux.HandleFunc("DELETE /api/students/delete/{studentId}", student.Delete(store))

	if opts.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(opts.StaticDir)))
	} else {
		mux.HandleFunc("/", notFound)
	}

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recover,
	}
	if opts.DBTimeout > 0 {
		mws = append(mws, middleware.Timeout(opts.DBTimeout))
	}

	return middleware.Chain(mux, mws...)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusNotFound, response.Fail("Route not found"))
}
