package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// queryDate lee un parámetro YYYY-MM-DD; vacío devuelve nil.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, fmt.Errorf("%s debe tener formato YYYY-MM-DD", key)
	}
	return &t, nil
}

// queryRange lee from/to (YYYY-MM-DD); to incluye el día completo.
func queryRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = queryDate(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = queryDate(c, "to"); err != nil {
		return nil, nil, err
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// queryPage lee limit/offset del query string.
func queryPage(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, fmt.Errorf("limit y offset deben ser enteros")
	}
	return p, p.Normalize()
}

// paginate recorta items a la página pedida y publica el total en X-Total-Count.
func paginate[T any](c *fiber.Ctx, p dto.PageRequest, items []T) []T {
	c.Set("X-Total-Count", strconv.Itoa(len(items)))
	if p.Offset >= len(items) {
		return items[:0]
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
