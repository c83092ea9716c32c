// Package certs keeps a local CA and the certificates it signs for serving
// the HTTP API over TLS.
package certs

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/utils"
	log "github.com/sirupsen/logrus"
	"io/ioutil"
	"math/big"
	"os"
	"path"
	"time"
)

const (
	CertsPath    = "certs"
	CAName       = "ca"
	Organization = "goscrambler"
	keyBits      = 2048
)

func GetCertsPath(name string) (string, string, bool, error) {
	certsFolder, err := utils.GetSubFolder(CertsPath)
	if err != nil {
		return "", "", false, err
	}
	certPath := path.Join(certsFolder, fmt.Sprintf("%s.crt", name))
	certKeyPath := path.Join(certsFolder, fmt.Sprintf("%s-key.pem", name))
	_, certErr := os.Stat(certPath)
	_, certKeyErr := os.Stat(certKeyPath)
	return certPath, certKeyPath, os.IsNotExist(certErr) || os.IsNotExist(certKeyErr), nil
}

func LoadCert(name string) (tls.Certificate, error) {
	certPath, certKeyPath, _, err := GetCertsPath(name)
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.LoadX509KeyPair(certPath, certKeyPath)
}

func subject() pkix.Name {
	return pkix.Name{Organization: []string{Organization}}
}

func GetCACert() (tls.Certificate, error) {
	certPath, certKeyPath, missing, err := GetCertsPath(CAName)
	if err != nil {
		return tls.Certificate{}, err
	}
	if missing {
		now := time.Now()
		cert := &x509.Certificate{
			SerialNumber:          big.NewInt(now.UnixNano()),
			Subject:               subject(),
			NotBefore:             now,
			NotAfter:              now.AddDate(1, 0, 0),
			IsCA:                  true,
			ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
			KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
			BasicConstraintsValid: true,
		}
		privKey, err := rsa.GenerateKey(rand.Reader, keyBits)
		if err != nil {
			return tls.Certificate{}, err
		}
		certBytes, err := x509.CreateCertificate(rand.Reader, cert, cert, &privKey.PublicKey, privKey)
		if err != nil {
			return tls.Certificate{}, err
		}
		if err := WriteCert(certBytes, certPath, privKey, certKeyPath); err != nil {
			return tls.Certificate{}, err
		}
		log.WithField("path", certPath).Info("Created CA certificate")
	}
	return LoadCert(CAName)
}

func WriteCert(certBytes []byte, certPath string, privKey *rsa.PrivateKey, certKeyPath string) error {
	certPEM := new(bytes.Buffer)
	if err := pem.Encode(certPEM, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certBytes,
	}); err != nil {
		return err
	}
	if err := ioutil.WriteFile(certPath, certPEM.Bytes(), 0600); err != nil {
		return err
	}
	privKeyPEM := new(bytes.Buffer)
	if err := pem.Encode(privKeyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privKey),
	}); err != nil {
		return err
	}
	return ioutil.WriteFile(certKeyPath, privKeyPEM.Bytes(), 0600)
}

// GetCert returns the certificate and key paths for name, signing a new
// certificate for localhost and every local address when none exists.
func GetCert(name string) (string, string, error) {
	certPath, certKeyPath, missing, err := GetCertsPath(name)
	if err != nil || !missing {
		return certPath, certKeyPath, err
	}
	caCert, err := GetCACert()
	if err != nil {
		return "", "", err
	}
	localIps, err := utils.GetLocalIPs()
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	cert := &x509.Certificate{
		SerialNumber: big.NewInt(now.UnixNano()),
		Subject:      subject(),
		DNSNames:     []string{"localhost"},
		IPAddresses:  localIps,
		NotBefore:    now,
		NotAfter:     now.AddDate(1, 0, 0),
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	privKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return "", "", err
	}
	rawCACert, err := x509.ParseCertificate(caCert.Certificate[0])
	if err != nil {
		return "", "", err
	}
	certBytes, err := x509.CreateCertificate(rand.Reader, cert, rawCACert, &privKey.PublicKey, caCert.PrivateKey)
	if err != nil {
		return "", "", err
	}
	if err := WriteCert(certBytes, certPath, privKey, certKeyPath); err != nil {
		return "", "", err
	}
	log.WithField("path", certPath).Info("Created certificate")
	return certPath, certKeyPath, nil
}
