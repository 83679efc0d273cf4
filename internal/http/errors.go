package http

import "github.com/gofiber/fiber/v2"

const (
	codeInvalidRequestBody = "invalid_request_body"
	codeServiceUnavailable = "service_unavailable"
	codeAnalysisFailed     = "analysis_failed"
	codeNoAnalysis         = "no_analysis"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg, Code: code})
}
