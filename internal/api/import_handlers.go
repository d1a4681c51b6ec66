package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clearledger/blogen/internal/importer"
	"github.com/clearledger/blogen/internal/logger"
)

// DownloadTemplate handles GET /api/v1/admin/import/template
func (h *Handlers) DownloadTemplate(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="blog-import-template.csv"`)
	return c.SendString(importer.SampleTemplate())
}

// StartImport handles POST /api/v1/admin/import. The uploaded CSV is
// validated in full before any remote call; a single bad row blocks
// the whole batch. Clean batches run in the background and the caller
// polls progress by batch id.
func (h *Handlers) StartImport(c *fiber.Ctx) error {
	if h.remote == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Publishing is not configured",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing CSV upload in field 'file'",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read upload: " + err.Error(),
		})
	}
	defer file.Close()

	rows, err := importer.ParseCSV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "CSV contains no data rows",
		})
	}

	if errs := h.validator.ValidateRows(rows); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errs,
		})
	}

	tracker := importer.NewTracker(len(rows))
	h.batches.add(tracker)

	pipeline := importer.NewPipeline(h.remote, importer.Options{
		DefaultBranch: h.config.DefaultBranch,
		BranchPrefix:  h.config.BranchPrefix,
		ContentPath:   h.config.ContentPath,
		Label:         h.config.ImportLabel,
		DefaultAuthor: h.config.DefaultAuthor,
		RowDelay:      h.config.RowDelay,
	})

	go func() {
		ctx, cancel := importContext()
		defer cancel()
		pipeline.Run(ctx, rows, tracker)
	}()

	logger.Get().Info().
		Str("batch", tracker.ID()).
		Int("rows", len(rows)).
		Msg("Import batch started")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":    tracker.ID(),
		"total": len(rows),
	})
}

// GetImportProgress handles GET /api/v1/admin/import/:id
func (h *Handlers) GetImportProgress(c *fiber.Ctx) error {
	id := c.Params("id")
	tracker, ok := h.batches.get(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}
	return c.JSON(tracker.Snapshot())
}
