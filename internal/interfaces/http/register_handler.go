package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-backend/internal/application/dto"
	"github.com/jhoicas/pos-backend/internal/application/register"
	"github.com/jhoicas/pos-backend/internal/domain"
)

// RegisterHandler maneja las sesiones de caja y el reporte Z (protegido).
type RegisterHandler struct {
	uc *register.SessionUseCase
}

// NewRegisterHandler construye el handler de caja.
func NewRegisterHandler(uc *register.SessionUseCase) *RegisterHandler {
	return &RegisterHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Description  Un usuario solo puede tener una sesión abierta; el índice
//
//	único parcial en DB garantiza la exclusión sin ventana de carrera.
//
// @Tags         register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "opening_amount, notes"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register/sessions [post]
func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.OpenSession(userID, in.OpeningAmount, in.Notes)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_OPEN", Message: "el usuario ya tiene una sesión abierta"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "monto de apertura inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSessionResponse(session))
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Tags         register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "closing_amount, cash_sales, card_sales, other_sales"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/register/sessions/{id}/close [post]
func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.CloseSession(c.Params("id"), userID, register.CloseInput{
		ClosingAmount: in.ClosingAmount,
		CashSales:     in.CashSales,
		CardSales:     in.CardSales,
		OtherSales:    in.OtherSales,
		Notes:         in.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay sesión abierta con ese id para este usuario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "sesión cerrada"})
}

// Current godoc
// @Summary      Sesión abierta del usuario autenticado
// @Tags         register
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/register/sessions/current [get]
func (h *RegisterHandler) Current(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	session, err := h.uc.OpenSessionFor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay sesión abierta"})
	}
	return c.JSON(dto.ToSessionResponse(session))
}

// Reconciliation godoc
// @Summary      Reporte Z de una sesión
// @Description  Reconstruye las ventas de la ventana [apertura, cierre) del
//
//	cajero, totaliza por método de pago y calcula esperado y diferencia.
//	Para una sesión abierta la ventana llega hasta ahora.
//
// @Tags         register
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/register/sessions/{id}/report [get]
func (h *RegisterHandler) Reconciliation(c *fiber.Ctx) error {
	report, err := h.uc.Reconciliation(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToReconciliationResponse(report))
}
