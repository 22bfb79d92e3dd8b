package entity

import "testing"

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		status        AppointmentStatus
		canCancel     bool
		canConsult    bool
		isCancelled   bool
		isCompleted   bool
	}{
		{AppointmentStatusPending, true, true, false, false},
		{AppointmentStatusConfirmed, true, true, false, false},
		{AppointmentStatusCancelled, false, false, true, false},
		{AppointmentStatusCompleted, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			if got := a.CanBeCancelled(); got != tt.canCancel {
				t.Errorf("CanBeCancelled() = %v, want %v", got, tt.canCancel)
			}
			if got := a.CanRecordConsultation(); got != tt.canConsult {
				t.Errorf("CanRecordConsultation() = %v, want %v", got, tt.canConsult)
			}
			if got := a.IsCancelled(); got != tt.isCancelled {
				t.Errorf("IsCancelled() = %v, want %v", got, tt.isCancelled)
			}
			if got := a.IsCompleted(); got != tt.isCompleted {
				t.Errorf("IsCompleted() = %v, want %v", got, tt.isCompleted)
			}
		})
	}
}

func TestDoctorProfileIsDecided(t *testing.T) {
	tests := []struct {
		status  VerificationStatus
		decided bool
	}{
		{VerificationStatusPending, false},
		{VerificationStatusInReview, false},
		{VerificationStatusVerified, true},
		{VerificationStatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			d := &DoctorProfile{VerificationStatus: tt.status}
			if got := d.IsDecided(); got != tt.decided {
				t.Errorf("IsDecided() = %v, want %v", got, tt.decided)
			}
		})
	}
}

func TestScreeningJobIsTerminal(t *testing.T) {
	tests := []struct {
		status   ScreeningStatus
		terminal bool
	}{
		{ScreeningStatusProcessing, false},
		{ScreeningStatusAnalyzing, false},
		{ScreeningStatusCompleted, true},
		{ScreeningStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			j := &ScreeningJob{Status: tt.status}
			if got := j.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}
