// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /entries/{id}", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (duration_ms).

# Admin Routes

	mux.HandleFunc("POST /matchweeks/{id}/resolve",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, handler)))

Requests without a matching X-Admin-Key get 401.

# Owner

UserID reads and validates the X-User-ID header.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.SubmitPickRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
