package utils

import "testing"

func TestCanonicalEstado(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Pendiente", EstadoPendiente, true},
		{"pendiente", EstadoPendiente, true},
		{"pending", EstadoPendiente, true},
		{"En Proceso", EstadoEnProceso, true},
		{"en_proceso", EstadoEnProceso, true},
		{"in progress", EstadoEnProceso, true},
		{"in-progress", EstadoEnProceso, true},
		{"Resuelto", EstadoResuelto, true},
		{"resolved", EstadoResuelto, true},
		{"CERRADO", EstadoCerrado, true},
		{"closed", EstadoCerrado, true},
		{"  cerrado  ", EstadoCerrado, true},
		{"archivado", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalEstado(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalEstado(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEstadoValuesOrder(t *testing.T) {
	want := []string{EstadoPendiente, EstadoEnProceso, EstadoResuelto, EstadoCerrado}
	got := EstadoValues()

	if len(got) != len(want) {
		t.Fatalf("expected %d states, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
