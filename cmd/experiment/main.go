package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/gonum/stat"
	"github.com/sachaservan/elgamal/elgamal"
)

// Result contains the mean and standard deviation of every timed operation
// for one modulus size.
type Result struct {
	AvgKeygenMS  float64 `json:"avg_keygen_ms"`
	StdKeygenMS  float64 `json:"std_keygen_ms"`
	AvgEncryptMS float64 `json:"avg_encrypt_ms"`
	StdEncryptMS float64 `json:"std_encrypt_ms"`
	AvgDecryptMS float64 `json:"avg_decrypt_ms"`
	StdDecryptMS float64 `json:"std_decrypt_ms"`
}

// Experiment is saved to a json file for further analysis
type Experiment struct {
	Results   *Result `json:"results"`
	Bits      int     `json:"bits"`
	NumTrials int     `json:"num_trials"`
	NumOps    int     `json:"num_ops_per_trial"`
}

func measure(bits, numTrials, numOps int) (*Result, error) {

	keygenMS := make([]float64, 0, numTrials)
	encryptMS := make([]float64, 0, numTrials*numOps)
	decryptMS := make([]float64, 0, numTrials*numOps)

	for trial := 0; trial < numTrials; trial++ {
		start := time.Now()
		pk, sk, err := elgamal.GenerateKeyPair(bits)
		if err != nil {
			return nil, err
		}
		keygenMS = append(keygenMS, msSince(start))

		for i := 0; i < numOps; i++ {
			// every supported modulus is larger than 40
			message := strconv.Itoa(i%40 + 1)

			start = time.Now()
			ct, err := pk.Encrypt(message)
			if err != nil {
				return nil, err
			}
			encryptMS = append(encryptMS, msSince(start))

			start = time.Now()
			m, err := sk.Decrypt(ct)
			if err != nil {
				return nil, err
			}
			decryptMS = append(decryptMS, msSince(start))

			if m != message {
				return nil, fmt.Errorf("decrypted %v, expected %v", m, message)
			}
		}
	}

	result := &Result{}
	result.AvgKeygenMS, result.StdKeygenMS = stat.MeanStdDev(keygenMS, nil)
	result.AvgEncryptMS, result.StdEncryptMS = stat.MeanStdDev(encryptMS, nil)
	result.AvgDecryptMS, result.StdDecryptMS = stat.MeanStdDev(decryptMS, nil)
	return result, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func main() {

	// command-line arguments to the experiment
	var args struct {
		MinBits      int    `default:"64"`
		MaxBits      int    `default:"512"` // sizes double from MinBits up to MaxBits
		NumTrials    int    `default:"5"`
		NumOps       int    `default:"20"`
		SaveFileName string `default:"elgamal_timing.json"`
	}

	arg.MustParse(&args)

	sizes := make([]int, 0)
	for bits := args.MinBits; bits <= args.MaxBits && bits > 0; bits *= 2 {
		sizes = append(sizes, bits)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	allExperiments := make([]*Experiment, 0)

	for _, bits := range sizes {
		wg.Add(1)

		go func(bits int) {
			defer wg.Done()

			fmt.Printf("[Info]: timing %v-bit groups (%v trials)\n", bits, args.NumTrials)

			result, err := measure(bits, args.NumTrials, args.NumOps)
			if err != nil {
				fmt.Printf("[Error]: %v-bit experiment failed: %v\n", bits, err)
				return
			}

			experiment := &Experiment{
				Results:   result,
				Bits:      bits,
				NumTrials: args.NumTrials,
				NumOps:    args.NumOps,
			}

			mu.Lock()
			allExperiments = append(allExperiments, experiment)
			mu.Unlock()

			fmt.Printf("[Info]: (bits=%v) keygen:  %.3f ms (std %.3f)\n", bits, result.AvgKeygenMS, result.StdKeygenMS)
			fmt.Printf("[Info]: (bits=%v) encrypt: %.3f ms (std %.3f)\n", bits, result.AvgEncryptMS, result.StdEncryptMS)
			fmt.Printf("[Info]: (bits=%v) decrypt: %.3f ms (std %.3f)\n", bits, result.AvgDecryptMS, result.StdDecryptMS)

		}(bits)
	}

	wg.Wait()

	sort.Slice(allExperiments, func(i, j int) bool {
		return allExperiments[i].Bits < allExperiments[j].Bits
	})

	file, err := json.MarshalIndent(allExperiments, "", " ")
	if err != nil {
		fmt.Printf("[Error]: %v when converting to json\n", err)
		return
	}

	err = os.WriteFile(args.SaveFileName, file, 0644)
	if err != nil {
		fmt.Printf("[Error]: %v when saving to file\n", err)
	}
}
