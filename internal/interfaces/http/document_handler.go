package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// DocumentHandler CRUD de un tipo de documento comercial (cotización, pedido o factura,
// de venta o de compra). Se registra una instancia por tipo.
type DocumentHandler struct {
	uc *billing.DocumentUseCase
}

// NewDocumentHandler construye el handler para el tipo del caso de uso.
func NewDocumentHandler(uc *billing.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento
// @Description  Requiere al menos una línea. El número se asigna por empresa, prefijo y año.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentRequest  true  "Encabezado y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/quotations [post]
// @Router       /api/sales/orders [post]
// @Router       /api/sales/invoices [post]
// @Router       /api/purchasing/orders [post]
// @Router       /api/purchasing/invoices [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.DocumentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "Cliente (ventas)"
// @Param        vendor_id    query  string  false  "Proveedor (compras)"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/sales/quotations [get]
// @Router       /api/sales/orders [get]
// @Router       /api/sales/invoices [get]
// @Router       /api/purchasing/orders [get]
// @Router       /api/purchasing/invoices [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var q dto.DocumentQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), companyID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/quotations/{id} [get]
// @Router       /api/sales/orders/{id} [get]
// @Router       /api/sales/invoices/{id} [get]
// @Router       /api/purchasing/orders/{id} [get]
// @Router       /api/purchasing/invoices/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza parcialmente; si vienen items se reemplazan todas las líneas
// y los totales se recalculan.
//
// @Summary      Actualizar documento comercial
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.DocumentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/quotations/{id} [put]
// @Router       /api/sales/orders/{id} [put]
// @Router       /api/sales/invoices/{id} [put]
// @Router       /api/purchasing/orders/{id} [put]
// @Router       /api/purchasing/invoices/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	var in dto.DocumentRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el documento y sus líneas.
//
// @Summary      Eliminar documento comercial
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/quotations/{id} [delete]
// @Router       /api/sales/orders/{id} [delete]
// @Router       /api/sales/invoices/{id} [delete]
// @Router       /api/purchasing/orders/{id} [delete]
// @Router       /api/purchasing/invoices/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InvoicePrintHandler descargas de la factura de venta.
type InvoicePrintHandler struct {
	uc *billing.PrintUseCase
}

// NewInvoicePrintHandler construye el handler.
func NewInvoicePrintHandler(uc *billing.PrintUseCase) *InvoicePrintHandler {
	return &InvoicePrintHandler{uc: uc}
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/invoices/{id}/pdf [get]
func (h *InvoicePrintHandler) PDF(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	data, filename, err := h.uc.DownloadInvoicePDF(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, "application/pdf", filename)
}

// XML godoc
// @Summary      Descargar factura en XML UBL 2.1
// @Tags         documents
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/invoices/{id}/xml [get]
func (h *InvoicePrintHandler) XML(c *fiber.Ctx) error {
	companyID, ok := tenant(c)
	if !ok {
		return nil
	}
	data, filename, err := h.uc.DownloadInvoiceXML(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, "application/xml", filename)
}

func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
