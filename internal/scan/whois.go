package scan

import (
	"context"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// WhoisInfo is the value produced by the whois probe.
type WhoisInfo struct {
	Registrar   string
	Created     string
	Updated     string
	Expires     string
	NameServers []string
	Status      []string
}

// WhoisProbe queries the registry for registration metadata. Registries that
// redact everything yield a sparse but successful result; only transport and
// parse errors fail the probe.
func WhoisProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "whois",
		Kind:    KindWhois,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			client := whois.NewClient()
			client.SetTimeout(timeout)

			raw, err := client.Whois(target.Host())
			if err != nil {
				return nil, err
			}
			parsed, err := whoisparser.Parse(raw)
			if err != nil {
				return nil, err
			}

			info := &WhoisInfo{}
			if parsed.Registrar != nil {
				info.Registrar = parsed.Registrar.Name
			}
			if parsed.Domain != nil {
				info.Created = parsed.Domain.CreatedDate
				info.Updated = parsed.Domain.UpdatedDate
				info.Expires = parsed.Domain.ExpirationDate
				info.NameServers = parsed.Domain.NameServers
				info.Status = parsed.Domain.Status
			}
			return info, nil
		},
	}
}
