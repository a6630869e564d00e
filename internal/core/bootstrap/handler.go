package bootstrap

import (
	"bufio"
	"encoding/json"
	"fmt"

	"shopsearch/internal/core/catalog"
	"shopsearch/internal/core/job"
	"shopsearch/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type Handler struct {
	log        *logger.Logger
	service    *Service
	jobs       *job.Service
	adminToken string
}

func NewHandler(service *Service, jobs *job.Service, adminToken string) *Handler {
	return &Handler{
		log:        logger.New("BootstrapHandler"),
		service:    service,
		jobs:       jobs,
		adminToken: adminToken,
	}
}

// authorized checks x-admin-token against the configured value. No token
// configured means the check is disabled.
func (h *Handler) authorized(c *fiber.Ctx) bool {
	if h.adminToken == "" {
		return true
	}
	return c.Get("x-admin-token") == h.adminToken
}

// HandleBootstrap runs the pipeline synchronously and answers with the
// aggregate counts.
func (h *Handler) HandleBootstrap(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
	}

	scraped, inserted, err := h.service.RunSync(c.Context(), req)
	if err != nil {
		h.log.LogError("bootstrap failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "bootstrap failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "scraped": scraped, "inserted": inserted})
}

// HandleStart starts an asynchronous bootstrap job and returns its id.
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
	}

	jobID, err := h.service.Enqueue(c.Context(), req)
	if err != nil {
		h.log.LogError("start bootstrap failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "start bootstrap failed"})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": jobID})
}

// HandleStatus reports a job's current state, result included once done.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	j, ok := h.jobs.Get(c.Params("jobId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(j)
}

// HandleStream opens a server-sent events stream over the job's progress
// bus. It closes after the done message or on client disconnect; closing
// never affects the job.
func (h *Handler) HandleStream(c *fiber.Ctx) error {
	id := c.Params("jobId")
	ch, cancel, ok := h.jobs.Subscribe(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for msg := range ch {
			b, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", b)
			if err := w.Flush(); err != nil {
				// Client went away; the job keeps running regardless.
				return
			}
			if msg.Type == "done" {
				return
			}
		}
	}))
	return nil
}

// HandleSeed loads the built-in sample products into both stores.
func (h *Handler) HandleSeed(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	products := catalog.SampleProducts()
	inserted, err := h.service.store.Insert(c.Context(), products)
	if err != nil {
		h.log.LogError("seed insert failed", err)
	}
	h.service.memory.Add(products...)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "seeded": len(products), "inserted": inserted})
}
