package main

import (
	"path/filepath"
	"testing"

	"github.com/sachaservan/elgamal/elgamal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygenEncryptDecryptFiles(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "test")

	require.NoError(t, keygen(&KeygenCmd{Bits: 32, Out: prefix}))
	require.NoError(t, check(&CheckCmd{Public: prefix + ".pub.json", Private: prefix + ".key.json"}))

	ctFile := filepath.Join(dir, "ct.json")
	require.NoError(t, encrypt(&EncryptCmd{Key: prefix + ".pub.json", Message: "595858", Out: ctFile}))
	require.NoError(t, decrypt(&DecryptCmd{Key: prefix + ".key.json", Ciphertext: ctFile}))

	sk := &elgamal.PrivateKey{}
	require.NoError(t, readJSON(prefix+".key.json", sk))
	ct := &elgamal.Ciphertext{}
	require.NoError(t, readJSON(ctFile, ct))

	m, err := sk.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, "595858", m)
}

func TestCheckMismatchedKeys(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	require.NoError(t, keygen(&KeygenCmd{Bits: 32, Out: a}))
	require.NoError(t, keygen(&KeygenCmd{Bits: 32, Out: b}))

	err := check(&CheckCmd{Public: a + ".pub.json", Private: b + ".key.json"})
	assert.ErrorIs(t, err, elgamal.ErrInvalidArgument)
}

func TestEncryptRejectsBadKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, writeJSON(path, map[string]string{"p": "x", "g": "4", "h": "18"}, 0644))

	err := encrypt(&EncryptCmd{Key: path, Message: "1"})
	assert.ErrorIs(t, err, elgamal.ErrArithmetic)
}
