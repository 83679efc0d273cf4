package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/airflow-ai/congestion-dashboard/internal/controller"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
	"github.com/airflow-ai/congestion-dashboard/internal/web"
)

// Handlers wires the controller and renderer into fiber routes.
type Handlers struct {
	ctl       *controller.Controller
	render    *web.Renderer
	heartbeat time.Duration
}

func Register(app *fiber.App, ctl *controller.Controller, render *web.Renderer) {
	h := &Handlers{ctl: ctl, render: render, heartbeat: 15 * time.Second}

	app.Use(RequestLogger())

	app.Get("/", h.dashboard)
	app.Post("/mode", h.setMode)
	app.Post("/analyze", h.analyzeForm)
	app.Post("/simulate", h.simulateForm)
	app.Get("/healthz", h.healthz)

	g := app.Group("/api")
	g.Get("state", h.state)
	g.Post("analyze", h.analyzeJSON)
	g.Post("simulate", h.simulateJSON)
	g.Get("heatmap", h.heatmap)
	g.Get("charts", h.charts)
	g.Get("events", h.events)

	c := app.Group("/charts")
	c.Get("forecast.svg", h.chartSVG(func(v *controller.View, b *bytes.Buffer) error {
		return web.RenderForecastChart(b, v.Charts.Rows)
	}))
	c.Get("utilization.svg", h.chartSVG(func(v *controller.View, b *bytes.Buffer) error {
		return web.RenderUtilizationChart(b, v.Charts.Rows)
	}))
	c.Get("risk.svg", h.chartSVG(func(v *controller.View, b *bytes.Buffer) error {
		return web.RenderRiskChart(b, v.Charts.Histogram)
	}))
}

func (h *Handlers) dashboard(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	err := h.render.Dashboard(c, web.PageData{
		State:  h.ctl.State(),
		Manual: h.ctl.ManualDefaults(),
	})
	if err != nil {
		log.Error().Err(err).Msg("render error")
		return c.Status(fiber.StatusInternalServerError).SendString("template error")
	}
	return nil
}

func (h *Handlers) setMode(c *fiber.Ctx) error {
	h.ctl.SetMode(controller.Mode(c.FormValue("mode")))
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handlers) analyzeForm(c *fiber.Ctx) error {
	var in domain.ManualInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequestBody, err.Error())
	}
	if err := h.ctl.AnalyzeManual(c.UserContext(), in); err != nil {
		log.Warn().Err(err).Msg("manual analysis failed")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handlers) simulateForm(c *fiber.Ctx) error {
	if err := h.ctl.Simulate(c.UserContext()); err != nil {
		log.Warn().Err(err).Msg("simulation failed")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *Handlers) analyzeJSON(c *fiber.Ctx) error {
	var in domain.ManualInput
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequestBody, err.Error())
	}
	return h.respondRun(c, h.ctl.AnalyzeManual(c.UserContext(), in))
}

func (h *Handlers) simulateJSON(c *fiber.Ctx) error {
	return h.respondRun(c, h.ctl.Simulate(c.UserContext()))
}

func (h *Handlers) respondRun(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, controller.ErrDisconnected):
		return writeError(c, fiber.StatusConflict, codeServiceUnavailable, err.Error())
	case err != nil:
		return writeError(c, fiber.StatusBadGateway, codeAnalysisFailed, err.Error())
	}
	return c.JSON(h.ctl.State())
}

func (h *Handlers) healthz(c *fiber.Ctx) error {
	st := h.ctl.State()
	status := "offline"
	if st.Connected {
		status = "online"
	}
	body := fiber.Map{"status": status}
	if st.Breaker != "" {
		body["breaker"] = st.Breaker
	}
	return c.JSON(body)
}

func (h *Handlers) state(c *fiber.Ctx) error {
	return c.JSON(h.ctl.State())
}

func (h *Handlers) heatmap(c *fiber.Ctx) error {
	v := h.ctl.State().View
	if v == nil {
		return writeError(c, fiber.StatusNotFound, codeNoAnalysis, "no analysis yet")
	}
	return c.JSON(v.Heatmap)
}

func (h *Handlers) charts(c *fiber.Ctx) error {
	v := h.ctl.State().View
	if v == nil {
		return writeError(c, fiber.StatusNotFound, codeNoAnalysis, "no analysis yet")
	}
	return c.JSON(v.Charts)
}

func (h *Handlers) chartSVG(draw func(*controller.View, *bytes.Buffer) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := h.ctl.State().View
		if v == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		var buf bytes.Buffer
		if err := draw(v, &buf); err != nil {
			if errors.Is(err, web.ErrNoChartData) {
				return c.SendStatus(fiber.StatusNoContent)
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("chart render failed")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		c.Set(fiber.HeaderContentType, "image/svg+xml")
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(buf.Bytes())
	}
}

// events streams controller events as Server-Sent Events until the client
// goes away.
func (h *Handlers) events(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ch, unsubscribe := h.ctl.Subscribe()
	st := h.ctl.State()
	initial := controller.Event{Type: controller.EventStatus, Connected: st.Connected, Loading: st.Loading, Error: st.Error}
	if st.View != nil {
		initial.Generation = st.View.Generation
	}
	heartbeat := h.heartbeat

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		if err := writeEvent(w, initial); err != nil {
			return
		}
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := writeEvent(w, ev); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, ev controller.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: "); err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	if _, err := w.WriteString("\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
