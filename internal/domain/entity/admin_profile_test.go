package entity

import "testing"

func TestAdminProfileHasPermission(t *testing.T) {
	tests := []struct {
		name        string
		permissions JSON
		check       string
		want        bool
	}{
		{
			name:        "granted",
			permissions: JSON{"permissions": []interface{}{PermissionVerifyDoctors}},
			check:       PermissionVerifyDoctors,
			want:        true,
		},
		{
			name:        "not granted",
			permissions: JSON{"permissions": []interface{}{PermissionViewAuditLogs}},
			check:       PermissionVerifyDoctors,
			want:        false,
		},
		{
			name:        "empty list",
			permissions: JSON{"permissions": []interface{}{}},
			check:       PermissionVerifyDoctors,
			want:        false,
		},
		{
			name:        "missing key",
			permissions: JSON{},
			check:       PermissionVerifyDoctors,
			want:        false,
		},
		{
			name:        "nil permissions",
			permissions: nil,
			check:       PermissionVerifyDoctors,
			want:        false,
		},
		{
			name:        "wrong value type",
			permissions: JSON{"permissions": "verify_doctors"},
			check:       PermissionVerifyDoctors,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &AdminProfile{Permissions: tt.permissions}
			if got := a.HasPermission(tt.check); got != tt.want {
				t.Errorf("HasPermission(%q) = %v, want %v", tt.check, got, tt.want)
			}
		})
	}
}

func TestJSONValueAndScan(t *testing.T) {
	original := JSON{"entity": "doctor_profile", "old_value": "pending"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var decoded JSON
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if decoded["entity"] != "doctor_profile" {
		t.Errorf("entity = %v, want doctor_profile", decoded["entity"])
	}
	if decoded["old_value"] != "pending" {
		t.Errorf("old_value = %v, want pending", decoded["old_value"])
	}
}

func TestJSONValueEmpty(t *testing.T) {
	value, err := JSON{}.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if value != nil {
		t.Errorf("Value() = %v, want nil for empty map", value)
	}
}

func TestJSONScanNil(t *testing.T) {
	var j JSON
	if err := j.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if j != nil {
		t.Errorf("expected nil JSON after scanning nil, got %v", j)
	}
}
