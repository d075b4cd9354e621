package config

import "testing"

func base() *Config {
	return &Config{
		AppPort:      "3000",
		DataFile:     "data.json",
		CacheBackend: "file",
	}
}

func TestValidate(t *testing.T) {
	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := base()
	c.AppPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("bad port accepted")
	}

	c = base()
	c.CacheBackend = "memcached"
	if err := c.Validate(); err == nil {
		t.Fatal("unknown cache backend accepted")
	}

	c = base()
	c.CacheBackend = "redis"
	if err := c.Validate(); err == nil {
		t.Fatal("redis backend without REDIS_ADDR accepted")
	}
	c.RedisAddr = "localhost:6379"
	if err := c.Validate(); err != nil {
		t.Fatalf("redis backend with addr rejected: %v", err)
	}

	c = base()
	c.SMTPHost = "smtp.example.com"
	c.SenderEmail = "ops@example.com"
	if err := c.Validate(); err == nil {
		t.Fatal("SMTP without REMINDER_EMAIL accepted")
	}
	c.ReminderEmail = "ops@example.com"
	if err := c.Validate(); err != nil {
		t.Fatalf("full SMTP config rejected: %v", err)
	}
}
