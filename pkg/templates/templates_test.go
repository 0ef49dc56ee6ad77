package templates

import (
	"testing"

	"github.com/tramita/go-intake/pkg/engine"
	"github.com/tramita/go-intake/pkg/schema"
)

func TestLoadAllStockTemplates(t *testing.T) {
	t.Parallel()

	for _, docType := range All() {
		docType := docType
		t.Run(string(docType), func(t *testing.T) {
			t.Parallel()
			tpl, err := Load(docType)
			if err != nil {
				t.Fatalf("Load(%s): %v", docType, err)
			}
			if tpl.Title == "" {
				t.Fatalf("template %s has no title", docType)
			}
			if tpl.Schema.Len() == 0 {
				t.Fatalf("template %s has no fields", docType)
			}
		})
	}
}

func TestLoadUnknownType(t *testing.T) {
	t.Parallel()

	if _, err := Load("denuncia"); err == nil {
		t.Fatalf("expected error for unknown document type")
	}
}

func TestOnlyIncidenteCarriesRules(t *testing.T) {
	t.Parallel()

	for _, docType := range []DocumentType{Peticion, Tutela} {
		tpl, err := Load(docType)
		if err != nil {
			t.Fatalf("Load(%s): %v", docType, err)
		}
		for _, field := range tpl.Schema.Fields() {
			if rules := tpl.Schema.Rules(field.ID); len(rules) > 0 {
				t.Fatalf("template %s should not declare conditional rules, found %d on %s", docType, len(rules), field.ID)
			}
		}
	}
}

func TestIncidenteConditionalFlow(t *testing.T) {
	t.Parallel()

	tpl, err := Load(Incidente)
	if err != nil {
		t.Fatalf("Load(incidente): %v", err)
	}
	eng, err := engine.New(tpl.Schema)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	virtual := schema.Snapshot{"procedureType": "audiencia-virtual"}
	if !eng.ShouldShow("virtualAudienceReason", virtual) {
		t.Fatalf("virtualAudienceReason should be visible for audiencia-virtual")
	}
	if !eng.IsRequired("virtualAudienceReason", virtual) {
		t.Fatalf("virtualAudienceReason should be required when shown")
	}
	if !eng.ShouldShow("hearingPlatform", virtual) {
		t.Fatalf("hearingPlatform should be visible for any audiencia type")
	}

	presencial := schema.Snapshot{"procedureType": "audiencia-presencial"}
	if eng.ShouldShow("virtualAudienceReason", presencial) {
		t.Fatalf("virtualAudienceReason must stay hidden for audiencia-presencial")
	}
	if !eng.ShouldShow("hearingPlatform", presencial) {
		t.Fatalf("hearingPlatform uses contains matching and should show for presencial too")
	}

	escrito := schema.Snapshot{"procedureType": "tramite-escrito"}
	if eng.ShouldShow("hearingPlatform", escrito) {
		t.Fatalf("hearingPlatform must stay hidden when no hearing is requested")
	}

	result := eng.Validate(schema.Snapshot{"procedureType": "tramite-escrito", "virtualAudienceReason": ""})
	if got := result.ErrorFor("virtualAudienceReason"); got != "" {
		t.Fatalf("hidden field produced error %q", got)
	}
}
