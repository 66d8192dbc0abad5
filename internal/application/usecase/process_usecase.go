package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/ports"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// ProcessUseCase ejecuta procesos remotos en 1C con auditoría.
// Orden fijo: primero el proceso, después la bitácora; si la bitácora falla,
// la request falla aunque el proceso haya terminado bien.
type ProcessUseCase struct {
	onec  ports.OneCService
	audit *AuditUseCase
	log   *logger.Logger
}

// NewProcessUseCase construye el caso de uso de procesos.
func NewProcessUseCase(onec ports.OneCService, audit *AuditUseCase, log *logger.Logger) *ProcessUseCase {
	return &ProcessUseCase{onec: onec, audit: audit, log: log}
}

// Run lanza un proceso arbitrario por nombre.
func (uc *ProcessUseCase) Run(ctx context.Context, user *entity.User, req dto.OneCProcessRequest) (*dto.OneCProcessResponse, error) {
	if req.ProcessName == "" {
		return nil, fmt.Errorf("%w: process_name es requerido", domain.ErrInvalidInput)
	}
	resp, err := uc.onec.RunProcess(ctx, req)
	if err != nil {
		return nil, err
	}
	details := fmt.Sprintf("Proceso: %s", req.ProcessName)
	if err := uc.audit.Record(ctx, user.ID, entity.ActionRunProcess, details, ""); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateStock refresca existencias de un almacén (o de todos si warehouseID es vacío).
func (uc *ProcessUseCase) UpdateStock(ctx context.Context, user *entity.User, warehouseID string) (*dto.OneCProcessResponse, error) {
	req := dto.OneCProcessRequest{ProcessName: "UpdateStock"}
	if warehouseID != "" {
		req.Parameters = map[string]string{"warehouseId": warehouseID}
	}
	resp, err := uc.onec.RunProcess(ctx, req)
	if err != nil {
		return nil, err
	}
	scope := warehouseID
	if scope == "" {
		scope = "todos los almacenes"
	}
	details := fmt.Sprintf("Actualización de existencias: %s", scope)
	if err := uc.audit.Record(ctx, user.ID, entity.ActionUpdateStock, details, ""); err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateReport pide a 1C la generación de un reporte.
func (uc *ProcessUseCase) GenerateReport(ctx context.Context, user *entity.User, reportType, period, storeID, warehouseID string) (*dto.OneCProcessResponse, error) {
	if reportType == "" {
		return nil, fmt.Errorf("%w: report_type es requerido", domain.ErrInvalidInput)
	}
	if period == "" {
		period = "today"
	}
	params := map[string]string{
		"reportType": reportType,
		"period":     period,
	}
	if storeID != "" {
		params["storeId"] = storeID
	}
	if warehouseID != "" {
		params["warehouseId"] = warehouseID
	}
	resp, err := uc.onec.RunProcess(ctx, dto.OneCProcessRequest{
		ProcessName: "GenerateReport",
		Parameters:  params,
	})
	if err != nil {
		return nil, err
	}
	details := fmt.Sprintf("Generación de reporte: %s, período: %s", reportType, period)
	if err := uc.audit.Record(ctx, user.ID, entity.ActionGenerateReport, details, ""); err != nil {
		return nil, err
	}
	return resp, nil
}
