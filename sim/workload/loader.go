// Package workload reads and writes passenger files and synthesizes them.
//
// A passenger file is comma separated. The first line holds the number of
// economy and business servers; every following line is one passenger as
// arrival,service,class with times in seconds after the simulation start and
// class 0 (economy) or 1 (business). Blank lines and lines starting with '#'
// are skipped.
package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/airport-sim/sim"
)

// Input is a parsed passenger file.
type Input struct {
	Servers sim.ServerConfig
	Records []sim.PassengerRecord
	Dropped int // records skipped for a non-positive service time
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening passenger file: %w", err)
	}
	defer func() { _ = file.Close() }()

	in, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return in, nil
}

// Load parses a passenger file. Records asking for a non-positive service
// time are dropped and counted in Input.Dropped. Range checks on the
// remaining values are left to sim.NewSimulator.
func Load(r io.Reader) (*Input, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := nextRow(reader)
	if err == io.EOF {
		return nil, errors.New("missing server counts line")
	}
	if err != nil {
		return nil, fmt.Errorf("reading server counts: %w", err)
	}
	servers, err := parseServers(header)
	if err != nil {
		line, _ := reader.FieldPos(0)
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	in := &Input{Servers: servers}
	for {
		row, err := nextRow(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading passenger record: %w", err)
		}
		line, _ := reader.FieldPos(0)
		record, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if record.ServiceTime <= 0 {
			logrus.Debugf("line %d: dropping %s passenger with service time %g", line, record.Class, record.ServiceTime)
			in.Dropped++
			continue
		}
		in.Records = append(in.Records, record)
	}
	return in, nil
}

// nextRow returns the next row that holds at least one non-blank field.
func nextRow(reader *csv.Reader) ([]string, error) {
	for {
		row, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for _, field := range row {
			if strings.TrimSpace(field) != "" {
				return row, nil
			}
		}
	}
}

func parseServers(row []string) (sim.ServerConfig, error) {
	if len(row) != 2 {
		return sim.ServerConfig{}, fmt.Errorf("server counts line has %d fields, expected 2", len(row))
	}
	economy, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return sim.ServerConfig{}, fmt.Errorf("economy server count: %w", err)
	}
	business, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return sim.ServerConfig{}, fmt.Errorf("business server count: %w", err)
	}
	return sim.NewServerConfig(economy, business), nil
}

func parseRecord(row []string) (sim.PassengerRecord, error) {
	if len(row) != 3 {
		return sim.PassengerRecord{}, fmt.Errorf("passenger record has %d fields, expected 3", len(row))
	}
	arrival, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return sim.PassengerRecord{}, fmt.Errorf("arrival time: %w", err)
	}
	service, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return sim.PassengerRecord{}, fmt.Errorf("service time: %w", err)
	}
	code, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return sim.PassengerRecord{}, fmt.Errorf("class: %w", err)
	}
	class, err := sim.ParseFareClass(code)
	if err != nil {
		return sim.PassengerRecord{}, err
	}
	return sim.PassengerRecord{Class: class, ArrivalTime: arrival, ServiceTime: service}, nil
}

// Write emits in as a passenger file that Load reads back unchanged.
func Write(w io.Writer, in *Input) error {
	writer := csv.NewWriter(w)
	header := []string{strconv.Itoa(in.Servers.Economy), strconv.Itoa(in.Servers.Business)}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing server counts: %w", err)
	}
	for i, r := range in.Records {
		row := []string{
			strconv.FormatFloat(r.ArrivalTime, 'f', -1, 64),
			strconv.FormatFloat(r.ServiceTime, 'f', -1, 64),
			strconv.Itoa(int(r.Class)),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing passenger record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes in to path, replacing any existing file.
func WriteFile(path string, in *Input) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating passenger file: %w", err)
	}
	if err := Write(file, in); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
