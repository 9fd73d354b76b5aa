package assets

import (
	"errors"
	"testing"

	"storefront/config"
)

func TestNewRequiresCredentials(t *testing.T) {
	for _, cfg := range []config.Cloudinary{
		{},
		{CloudName: "demo"},
		{CloudName: "demo", APIKey: "key"},
	} {
		if _, err := New(cfg); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("New(%+v): expected ErrNotConfigured, got %v", cfg, err)
		}
	}
}

func TestNewConfigured(t *testing.T) {
	c, err := New(config.Cloudinary{CloudName: "demo", APIKey: "key", APISecret: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if !c.cld.Config.URL.Secure {
		t.Error("expected secure delivery URLs")
	}
}
