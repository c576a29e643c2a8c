package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	if err := Register(reg); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second Register should tolerate existing collectors: %v", err)
	}
}

func TestRegister_SeparateRegistries(t *testing.T) {
	if err := Register(prometheus.NewRegistry()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := Register(prometheus.NewRegistry()); err != nil {
		t.Fatalf("Register into a second registry: %v", err)
	}
}

func TestRegister_ExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	LoginAttemptsTotal.WithLabelValues("success").Inc()
	AuditEventsDroppedTotal.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, f := range families {
		found[f.GetName()] = true
	}
	for _, name := range []string{"todo_login_attempts_total", "todo_audit_events_dropped_total"} {
		if !found[name] {
			t.Fatalf("metric %s not exposed; got %v", name, found)
		}
	}
}
