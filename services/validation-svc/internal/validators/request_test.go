package validators

import "testing"

func TestValidateRequest(t *testing.T) {
	if errs := ValidateRequest(nil); len(errs) != 1 {
		t.Errorf("got %d errors for nil request, want 1", len(errs))
	}
	if errs := ValidateRequest(&ConfigRequest{}); len(errs) != 0 {
		t.Errorf("got %d errors for non-nil request, want 0", len(errs))
	}
}

func TestValidateThreshold(t *testing.T) {
	if errs := ValidateThreshold(5, "epsilon", 0, 10); len(errs) != 0 {
		t.Errorf("expected no errors within range, got %+v", errs)
	}
	if errs := ValidateThreshold(15, "epsilon", 0, 10); len(errs) != 1 {
		t.Errorf("expected one error above range, got %+v", errs)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantErrors int
	}{
		{"valid", 0, 50, 0},
		{"negative_page", -1, 50, 1},
		{"negative_page_size", 0, -1, 1},
		{"page_size_too_large", 0, 1001, 1},
		{"both_negative", -1, -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePagination(tt.page, tt.pageSize)
			if len(errs) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %+v", len(errs), tt.wantErrors, errs)
			}
		})
	}
}
