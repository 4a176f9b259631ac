/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct. Message is the
exact text that follows the "[ERROR] " tag on the wire (spec §4.F, §6); Status is only
meaningful for errors surfaced through the admin HTTP surface.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: Wire protocol validation errors.
	ErrInvalidUsername: {Code: ErrInvalidUsername, Message: "Invalid username. Use alphanumeric characters only.", Status: http.StatusBadRequest},
	ErrUsernameTaken:    {Code: ErrUsernameTaken, Message: "Username already taken. Choose another.", Status: http.StatusConflict},
	ErrInvalidRoomName:  {Code: ErrInvalidRoomName, Message: "Invalid room name.", Status: http.StatusBadRequest},
	ErrInvalidFilename:  {Code: ErrInvalidFilename, Message: "Invalid file type. Allowed: .txt, .pdf, .jpg, .png", Status: http.StatusBadRequest},
	ErrMalformedCommand: {Code: ErrMalformedCommand, Message: "%s", Status: http.StatusBadRequest},
	ErrUnknownCommand:   {Code: ErrUnknownCommand, Message: "Unknown command.", Status: http.StatusBadRequest},

	// 2xxx: Capacity errors.
	ErrServerFull:      {Code: ErrServerFull, Message: "Server full.", Status: http.StatusServiceUnavailable},
	ErrRoomFull:        {Code: ErrRoomFull, Message: "Room is full.", Status: http.StatusForbidden},
	ErrRoomUnavailable: {Code: ErrRoomUnavailable, Message: "Unable to join room.", Status: http.StatusServiceUnavailable},
	ErrFileTooLarge:    {Code: ErrFileTooLarge, Message: "File exceeds size limit (3MB).", Status: http.StatusRequestEntityTooLarge},

	// 3xxx: Semantic errors.
	ErrNotInRoom:     {Code: ErrNotInRoom, Message: "You are not in any room.", Status: http.StatusBadRequest},
	ErrUserOffline:   {Code: ErrUserOffline, Message: "User not found or offline.", Status: http.StatusNotFound},
	ErrJoinRoomFirst: {Code: ErrJoinRoomFirst, Message: "Join a room first.", Status: http.StatusBadRequest},

	// 4xxx: Admin HTTP surface errors.
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests.", Status: http.StatusTooManyRequests},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Content-Type must be application/json.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request body contains unexpected trailing content.", Status: http.StatusBadRequest},
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},

	// 5xxx: Internal errors.
	ErrUnknown: {Code: ErrUnknown, Message: "An unexpected server error occurred.", Status: http.StatusInternalServerError},
}
