package serial

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyUSB0")
	if cfg.Device != "/dev/ttyUSB0" {
		t.Errorf("Expected device /dev/ttyUSB0, got %s", cfg.Device)
	}
	if cfg.Baud != DefaultBaud {
		t.Errorf("Expected baud %d, got %d", DefaultBaud, cfg.Baud)
	}
	if cfg.ReadTimeout != 100 {
		t.Errorf("Expected 100ms read timeout, got %d", cfg.ReadTimeout)
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestOpenMissingDevice(t *testing.T) {
	cfg := DefaultConfig("/dev/does-not-exist-dimmer")
	if _, err := Open(cfg); err == nil {
		t.Error("Expected error opening a missing device")
	}
}
