package testutil

import (
	"net/http"

	id "rollcall/pkg/domain"
	"rollcall/pkg/requestcontext"
)

// WithSubject puts subjectID in the request context, as the auth middleware
// would for an authenticated request.
func WithSubject(req *http.Request, subjectID id.SubjectID) *http.Request {
	return req.WithContext(requestcontext.WithSubjectID(req.Context(), subjectID))
}

// WithClientIP sets the origin address seen by handlers.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent()))
}
