// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package api exposes the matching engine over HTTP using the chi router.

Routes (all JSON, wrapped in models.APIResponse):

	GET  /api/v1/health                          database connectivity and uptime
	POST /api/v1/users                           create a user
	POST /api/v1/users/{userID}/profile          submit the intake quiz
	PUT  /api/v1/users/{userID}/phone            change the shared phone number
	GET  /api/v1/users/{userID}/matches          run a dashboard session
	POST /api/v1/users/{userID}/connect/{targetID} record a click, return the deep link
	GET  /api/v1/admin/metrics                   evaluation snapshot (X-Admin-Token)
	GET  /metrics                                Prometheus exposition

The handlers are thin: they decode and validate input, call one collaborator,
and map sentinel errors to status codes. Collaborators are declared as small
interfaces in handler.go so tests can substitute them.

Error codes:

	VALIDATION_ERROR   400  malformed body or failed field validation
	INVALID_ID         400  non-numeric or non-positive path ID
	USER_NOT_FOUND     404  profile submitted for an unknown user
	PROFILE_NOT_FOUND  404  viewer has not completed the quiz
	USERNAME_TAKEN     409
	PROFILE_EXISTS     409
	PHONE_IN_USE       409
	UNAUTHORIZED       401  admin token missing or wrong
	RATE_LIMITED       429
	INTERNAL_ERROR     500
*/
package api
