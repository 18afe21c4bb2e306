package config

import "testing"

func TestSetAndGetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := validTestConfig()
	SetConfig(cfg)

	if got := GetConfig(); got != cfg {
		t.Errorf("GetConfig() = %p, want %p", got, cfg)
	}
}

func TestMustGetConfig_PanicsWhenUnset(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	SetConfig(nil)

	defer func() {
		if recover() == nil {
			t.Error("MustGetConfig() did not panic with nil configuration")
		}
	}()
	MustGetConfig()
}

func TestMustGetConfig_ReturnsConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := validTestConfig()
	SetConfig(cfg)

	if got := MustGetConfig(); got != cfg {
		t.Errorf("MustGetConfig() = %p, want %p", got, cfg)
	}
}
