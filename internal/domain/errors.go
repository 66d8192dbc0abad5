package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound también cubre recursos que existen pero no pertenecen al
	// solicitante: responder distinto filtraría su existencia.
	ErrNotFound = errors.New("recurso no encontrado")

	// ErrInvalidInitData payload de login ilegible o con firma inválida.
	ErrInvalidInitData = errors.New("datos de autenticación inválidos")

	// ErrUnauthorized token ausente, vencido, manipulado, o usuario inexistente/inactivo.
	ErrUnauthorized = errors.New("no autenticado")

	// ErrForbidden identidad válida pero rol insuficiente.
	ErrForbidden = errors.New("acceso denegado")

	// ErrInvalidInput entrada inválida del cliente.
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrAuditWrite falló la escritura de auditoría: la request completa se aborta
	// para que ninguna acción privilegiada quede sin registrar.
	ErrAuditWrite = errors.New("fallo al registrar auditoría")

	// ErrBackendUnavailable fallo transitorio del backend externo (1C) o de
	// persistencia; el cliente puede reintentar.
	ErrBackendUnavailable = errors.New("servicio externo no disponible")
)
