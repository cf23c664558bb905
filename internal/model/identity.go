package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint identifies the endpoint a descriptor connects to.
// Display-only fields (name) are ignored so renamed copies of the same node collide.
func (p *Proxy) Fingerprint() string {
	var parts []string

	// --- 1. Endpoint ---
	parts = append(parts, strings.ToLower(p.Type))
	parts = append(parts, strings.ToLower(p.Server))
	parts = append(parts, p.Port.String())

	// --- 2. Authentication ---
	parts = append(parts, p.UUID, p.Password, p.Auth, p.AuthStr)

	// "auto" is what vmess falls back to anyway
	cipher := strings.ToLower(p.Cipher)
	if p.Type == TypeVMess && cipher == "auto" {
		cipher = ""
	}
	parts = append(parts, cipher)

	// --- 3. Transport ---
	network := strings.ToLower(p.Network)
	if network == "" {
		network = "tcp"
	}
	parts = append(parts, network)

	if p.WSOpts != nil {
		parts = append(parts, p.WSOpts.Path, p.WSOpts.Header("Host"))
	} else {
		parts = append(parts, "", "")
	}

	// --- 4. Security ---
	tls := ""
	if p.TLS {
		tls = "tls"
	}
	parts = append(parts, tls, p.ServerName, p.SNI, p.Flow)

	if p.RealityOpts != nil {
		parts = append(parts, p.RealityOpts.PublicKey, p.RealityOpts.ShortID)
	} else {
		parts = append(parts, "", "")
	}

	// --- 5. Protocol specifics ---
	parts = append(parts, p.Plugin)
	for _, kv := range p.PluginOpts {
		parts = append(parts, kv.Key+"="+kv.Value)
	}
	parts = append(parts, p.Obfs, p.ObfsPassword, p.CongestionController, p.UDPRelayMode)

	signature := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(hash[:])
}
