package server

import (
	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/register
// @Summary Register a user
// @Description Create a new account. Mail addresses are unique.
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body object{username=string,mail=string,password=string} true "Registration request"
// @Success 201 {string} string "Successfully registered!"
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Mail     string `json:"mail"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Mail == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, mail and password are required"))
	}

	msg, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Mail:     req.Mail,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).SendString(msg)
}

// Authenticate handles POST /api/authenticate
// @Summary Authenticate
// @Description Exchange mail and password for a bearer token
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body object{mail=string,password=string} true "Credentials"
// @Success 200 {string} string "JWT"
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /authenticate [post]
func (s *Server) Authenticate(c *fiber.Ctx) error {
	var req struct {
		Mail     string `json:"mail"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Mail == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Mail and password are required"))
	}

	token, err := s.authService.Authenticate(c.UserContext(), req.Mail, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.SendString(token)
}

// Logout handles POST /api/logout
// @Summary Logout
// @Description Revoke the presented token until it expires
// @Tags auth
// @Produce plain
// @Success 200 {string} string "Logged out"
// @Failure 401 {object} models.ErrorResponse
// @Router /logout [post]
// @Security BearerAuth
func (s *Server) Logout(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization failed!"))
	}

	if err := s.authService.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, err)
	}

	return c.SendString("Logged out")
}
