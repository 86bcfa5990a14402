package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hirelink/hirelink-backend/internal/httpx"
	"github.com/hirelink/hirelink-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	resp, err := h.authService.Register(input)
	if err != nil {
		return httpx.BadRequest(c, "registration_failed", err.Error())
	}

	h.setAccessCookie(c, resp.Token)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	resp, err := h.authService.Login(input)
	if err != nil {
		return httpx.Unauthorized(c, "invalid_credentials", "Invalid credentials")
	}

	h.setAccessCookie(c, resp.Token)
	return c.JSON(resp)
}

// CSRF issues the double-submit token browser clients echo in X-HL-CSRF.
func (h *AuthHandler) CSRF(c *fiber.Ctx) error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return httpx.Internal(c, "csrf_generation_failed")
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	c.Cookie(&fiber.Cookie{
		Name:     "hl_csrf",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"csrf_token": token})
}

func (h *AuthHandler) setAccessCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "hl_access",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
