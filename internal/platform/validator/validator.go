// internal/platform/validator/validator.go
package validator

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Domain validators

// domainRegex valida hostnames: labels alfanuméricos con guiones
// internos, separados por puntos. Soporta IDN via punycode.
var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)

// IsDomain verifica si un string es un dominio válido.
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}

	if !domainRegex.MatchString(domain) {
		return false
	}

	// Verificar que no sea una IP
	if net.ParseIP(domain) != nil {
		return false
	}

	return true
}

// IsSubdomain verifica si subdomain es un subdominio válido de baseDomain.
func IsSubdomain(subdomain, baseDomain string) bool {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))

	if subdomain == baseDomain {
		return false
	}

	return strings.HasSuffix(subdomain, "."+baseDomain)
}

// IsRegistrable verifica que el dominio sea al menos un eTLD+1:
// rechaza sufijos públicos a secas ("com", "co.uk") como targets.
func IsRegistrable(domain string) bool {
	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return false
	}
	return domain == etld1 || strings.HasSuffix(domain, "."+etld1)
}

// NormalizeDomain normaliza un dominio a su forma canónica.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, ".")
	domain = strings.TrimPrefix(domain, "www.")
	return domain
}

// Candidate normalization

// NormalizeCandidate normaliza una línea cruda de salida de herramienta
// a un hostname canónico dentro del scope de root.
//
// Pasos definidos: trim de espacios y CR, descarte de líneas vacías o
// comentario, strip de scheme y fragmento de path, lowercase, strip de
// punto final y prefijo wildcard, chequeo sintáctico de hostname
// (al menos un separador de label) y chequeo de scope contra root.
//
// Retorna el hostname normalizado y true, o "" y false si la línea
// debe descartarse. Nunca falla: una línea malformada solo se descarta.
func NormalizeCandidate(line, root string) (string, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return "", false
	}

	// Strip scheme ("https://host/path" -> "host/path")
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}

	// Strip path, query y userinfo
	if idx := strings.IndexAny(s, "/?"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.LastIndex(s, "@"); idx >= 0 {
		s = s[idx+1:]
	}

	// Strip puerto (solo si no parece IPv6)
	if idx := strings.LastIndex(s, ":"); idx >= 0 && strings.Count(s, ":") == 1 {
		s = s[:idx]
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimPrefix(s, "*.")

	if s == "" || !strings.Contains(s, ".") {
		return "", false
	}

	if !IsDomain(s) {
		return "", false
	}

	// Scope: debe ser el root o terminar en ".<root>"
	if root != "" && s != root && !strings.HasSuffix(s, "."+root) {
		return "", false
	}

	return s, true
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
