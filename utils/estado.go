// utils/estado.go - Case state canonicalization
package utils

import "strings"

const (
	// Canonical case states as stored in the estado columns.
	EstadoPendiente = "Pendiente"
	EstadoEnProceso = "En Proceso"
	EstadoResuelto  = "Resuelto"
	EstadoCerrado   = "Cerrado"
)

var (
	estadoSynonyms = map[string][]string{
		EstadoPendiente: {
			"pendiente",
			"pending",
		},
		EstadoEnProceso: {
			"en proceso",
			"en-proceso",
			"en_proceso",
			"in progress",
			"in-progress",
			"in_progress",
		},
		EstadoResuelto: {
			"resuelto",
			"resolved",
		},
		EstadoCerrado: {
			"cerrado",
			"closed",
		},
	}
	estadoAliasToCanonical = buildEstadoAliasMap()
)

func buildEstadoAliasMap() map[string]string {
	aliasMap := make(map[string]string)
	for canonical, synonyms := range estadoSynonyms {
		aliasMap[normalizeEstado(canonical)] = canonical
		for _, alias := range synonyms {
			aliasMap[normalizeEstado(alias)] = canonical
		}
	}
	return aliasMap
}

func normalizeEstado(estado string) string {
	return strings.ToLower(strings.TrimSpace(estado))
}

// CanonicalEstado resolves a state value (canonical, English alias, or loose
// casing) to its canonical form. ok is false for unrecognized values.
func CanonicalEstado(estado string) (string, bool) {
	canonical, ok := estadoAliasToCanonical[normalizeEstado(estado)]
	return canonical, ok
}

// EstadoValues lists the canonical states in lifecycle order.
func EstadoValues() []string {
	return []string{EstadoPendiente, EstadoEnProceso, EstadoResuelto, EstadoCerrado}
}
