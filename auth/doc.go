// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the credentials carried by API requests.

# Admin Key

Competition management (creating matchweeks, recording payments, resolving
results) requires the configured ADMIN_KEY in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

# Owner References

Entries belong to the user named in the X-User-ID header. Identity itself
is established upstream; this package only validates the reference:

	userID, err := auth.ValidateUserID(r.Header.Get("X-User-ID"))
*/
package auth
