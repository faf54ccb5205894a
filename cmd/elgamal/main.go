package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sachaservan/elgamal/elgamal"
)

type KeygenCmd struct {
	Bits int    `default:"1024" help:"size of the safe prime modulus"`
	Out  string `default:"elgamal" help:"writes OUT.pub.json and OUT.key.json"`
}

type EncryptCmd struct {
	Key     string `arg:"required" help:"public key file"`
	Message string `arg:"required" help:"decimal integer in [1, p-1]"`
	Out     string `help:"ciphertext file (default stdout)"`
}

type DecryptCmd struct {
	Key        string `arg:"required" help:"private key file"`
	Ciphertext string `arg:"required" help:"ciphertext file"`
}

type CheckCmd struct {
	Public  string `arg:"required"`
	Private string `arg:"required"`
}

// command-line arguments
var args struct {
	Keygen  *KeygenCmd  `arg:"subcommand:keygen"`
	Encrypt *EncryptCmd `arg:"subcommand:encrypt"`
	Decrypt *DecryptCmd `arg:"subcommand:decrypt"`
	Check   *CheckCmd   `arg:"subcommand:check"`
}

func main() {

	p := arg.MustParse(&args)

	var err error
	switch {
	case args.Keygen != nil:
		err = keygen(args.Keygen)
	case args.Encrypt != nil:
		err = encrypt(args.Encrypt)
	case args.Decrypt != nil:
		err = decrypt(args.Decrypt)
	case args.Check != nil:
		err = check(args.Check)
	default:
		p.Fail("missing subcommand")
	}

	if err != nil {
		log.Fatalf("[Error]: %v\n", err)
	}
}

func keygen(cmd *KeygenCmd) error {
	log.Printf("[Keygen]: generating %v-bit safe prime group\n", cmd.Bits)

	pk, sk, err := elgamal.GenerateKeyPair(cmd.Bits)
	if err != nil {
		return err
	}

	if err := writeJSON(cmd.Out+".pub.json", pk, 0644); err != nil {
		return err
	}
	if err := writeJSON(cmd.Out+".key.json", sk, 0600); err != nil {
		return err
	}

	log.Printf("[Keygen]: wrote %v.pub.json and %v.key.json\n", cmd.Out, cmd.Out)
	return nil
}

func encrypt(cmd *EncryptCmd) error {
	pk := &elgamal.PublicKey{}
	if err := readJSON(cmd.Key, pk); err != nil {
		return err
	}

	ct, err := pk.Encrypt(cmd.Message)
	if err != nil {
		return err
	}

	if cmd.Out == "" {
		data, err := json.MarshalIndent(ct, "", " ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	return writeJSON(cmd.Out, ct, 0644)
}

func decrypt(cmd *DecryptCmd) error {
	sk := &elgamal.PrivateKey{}
	if err := readJSON(cmd.Key, sk); err != nil {
		return err
	}
	ct := &elgamal.Ciphertext{}
	if err := readJSON(cmd.Ciphertext, ct); err != nil {
		return err
	}

	m, err := sk.Decrypt(ct)
	if err != nil {
		return err
	}
	fmt.Println(m)
	return nil
}

func check(cmd *CheckCmd) error {
	pk := &elgamal.PublicKey{}
	if err := readJSON(cmd.Public, pk); err != nil {
		return err
	}
	sk := &elgamal.PrivateKey{}
	if err := readJSON(cmd.Private, sk); err != nil {
		return err
	}

	if err := elgamal.VerifyKeyPair(pk, sk); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
