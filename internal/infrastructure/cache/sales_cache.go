// Package cache implementa la caché de respuestas de ventas sobre Redis.
// Las consultas a 1C son lentas y los vendedores refrescan el dashboard con
// frecuencia; un TTL corto absorbe esa carga sin servir datos viejos.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/ports"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

var _ ports.SalesCache = (*RedisSalesCache)(nil)
var _ ports.SalesCache = (*NoopSalesCache)(nil)

// RedisSalesCache caché de ventas con TTL sobre Redis.
type RedisSalesCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisSalesCache conecta a Redis y construye la caché.
func NewRedisSalesCache(addr, password string, db int, ttl time.Duration, log *logger.Logger) (*RedisSalesCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	return &RedisSalesCache{client: client, ttl: ttl, log: log}, nil
}

// Close cierra la conexión a Redis.
func (c *RedisSalesCache) Close() error {
	return c.client.Close()
}

// GetSales devuelve la respuesta cacheada si existe y es legible.
func (c *RedisSalesCache) GetSales(ctx context.Context, key string) (*dto.SalesResponse, bool) {
	raw, err := c.client.Get(ctx, "sales:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.SalesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// Entrada corrupta: descartarla para no reintentar en cada hit.
		c.client.Del(ctx, "sales:"+key)
		return nil, false
	}
	return &resp, true
}

// SetSales guarda la respuesta con el TTL configurado. Un fallo de caché solo
// se registra: nunca rompe la request que ya tiene sus datos.
func (c *RedisSalesCache) SetSales(ctx context.Context, key string, resp *dto.SalesResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, "sales:"+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la respuesta de ventas")
	}
}

// NoopSalesCache caché desactivada (sin REDIS_ADDR).
type NoopSalesCache struct{}

// NewNoopSalesCache construye la caché nula.
func NewNoopSalesCache() *NoopSalesCache { return &NoopSalesCache{} }

// GetSales nunca tiene hit.
func (NoopSalesCache) GetSales(context.Context, string) (*dto.SalesResponse, bool) { return nil, false }

// SetSales descarta la entrada.
func (NoopSalesCache) SetSales(context.Context, string, *dto.SalesResponse) {}
