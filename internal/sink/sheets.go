// internal/sink/sheets.go
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"application-intake/internal/common/config"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw = "RAW"

	probeFields  = "properties.title,sheets.properties.title"
	ensureFields = "sheets.properties(sheetId,title)"
)

// SheetsSink stores each table as a tab of one Google spreadsheet.
type SheetsSink struct {
	srv     *sheets.Service
	sheetID string
	logger  logger.Logger
}

// ServiceAccountJSON renders the credentials file for cfg.
func ServiceAccountJSON(cfg config.GoogleConfig) ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":                        "service_account",
		"project_id":                  cfg.ProjectID,
		"private_key_id":              cfg.PrivateKeyID,
		"private_key":                 cfg.FormattedPrivateKey(),
		"client_email":                cfg.ClientEmail,
		"client_id":                   cfg.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        "https://www.googleapis.com/robot/v1/metadata/x509/" + url.QueryEscape(cfg.ClientEmail),
	})
}

// NewSheetsSink authenticates as the configured service account.
func NewSheetsSink(ctx context.Context, cfg config.GoogleConfig, log logger.Logger) (*SheetsSink, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, errors.NewConfigurationMissingError(missing)
	}

	data, err := ServiceAccountJSON(cfg)
	if err != nil {
		return nil, errors.NewSinkAuthFailedError(config.SinkDriverSheets, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, errors.NewSinkAuthFailedError(config.SinkDriverSheets, err)
	}

	return NewSheetsSinkWithOptions(ctx, cfg.SheetID, log, option.WithCredentials(creds))
}

// NewSheetsSinkWithOptions builds the sink from raw client options.
func NewSheetsSinkWithOptions(ctx context.Context, sheetID string, log logger.Logger, opts ...option.ClientOption) (*SheetsSink, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSink{
		srv:     srv,
		sheetID: sheetID,
		logger:  log.WithFields(map[string]interface{}{"sink": config.SinkDriverSheets, "sheetId": sheetID}),
	}, nil
}

func (s *SheetsSink) Name() string {
	return config.SinkDriverSheets
}

// Probe reads the spreadsheet title and tab names.
func (s *SheetsSink) Probe(ctx context.Context) (*ProbeResult, error) {
	ss, err := s.srv.Spreadsheets.Get(s.sheetID).Fields(probeFields).Context(ctx).Do()
	if err != nil {
		return nil, classify(s.Name(), err, func(err error) *errors.StandardError {
			return errors.NewSinkUnreachableError(s.Name(), err)
		})
	}

	result := &ProbeResult{Tables: []string{}}
	if ss.Properties != nil {
		result.Title = ss.Properties.Title
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			result.Tables = append(result.Tables, sh.Properties.Title)
		}
	}
	return result, nil
}

func (s *SheetsSink) EnsureTablesExist(ctx context.Context, tables []Table) error {
	if err := s.ensureTables(ctx, tables); err != nil {
		return classify(s.Name(), err, errors.NewSinkPreparationFailedError)
	}
	return nil
}

func (s *SheetsSink) ensureTables(ctx context.Context, tables []Table) error {
	ss, err := s.srv.Spreadsheets.Get(s.sheetID).Fields(ensureFields).Context(ctx).Do()
	if err != nil {
		return err
	}

	sheetIDs := make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}

	var addRequests []*sheets.Request
	var added []string
	for _, t := range tables {
		if _, ok := sheetIDs[t.Name]; ok || contains(added, t.Name) {
			continue
		}
		added = append(added, t.Name)
		addRequests = append(addRequests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: t.Name},
			},
		})
	}

	if len(addRequests) > 0 {
		resp, err := s.srv.Spreadsheets.BatchUpdate(s.sheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: addRequests,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
		for _, reply := range resp.Replies {
			if reply != nil && reply.AddSheet != nil && reply.AddSheet.Properties != nil {
				sheetIDs[reply.AddSheet.Properties.Title] = reply.AddSheet.Properties.SheetId
			}
		}
		s.logger.Info("created missing tables", map[string]interface{}{"tables": added})
	}

	var filterRequests []*sheets.Request
	var headed []string
	for _, t := range tables {
		if contains(headed, t.Name) {
			continue
		}

		vr, err := s.srv.Spreadsheets.Values.Get(s.sheetID, FirstCellRange(t.Name)).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to read header of %s: %w", t.Name, err)
		}
		if len(vr.Values) > 0 {
			continue
		}

		width := len(t.Header)
		_, err = s.srv.Spreadsheets.Values.Update(s.sheetID, HeaderRange(t.Name, width), &sheets.ValueRange{
			Values: [][]interface{}{t.Header},
		}).ValueInputOption(valueInputRaw).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to write header of %s: %w", t.Name, err)
		}
		headed = append(headed, t.Name)

		if id, ok := sheetIDs[t.Name]; ok {
			filterRequests = append(filterRequests, &sheets.Request{
				SetBasicFilter: &sheets.SetBasicFilterRequest{
					Filter: &sheets.BasicFilter{
						Range: &sheets.GridRange{
							SheetId:          id,
							StartRowIndex:    0,
							EndRowIndex:      1,
							StartColumnIndex: 0,
							EndColumnIndex:   int64(width),
							ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
						},
					},
				},
			})
		}
	}

	if len(filterRequests) > 0 {
		_, err := s.srv.Spreadsheets.BatchUpdate(s.sheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: filterRequests,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to set header filters: %w", err)
		}
		s.logger.Info("added headers and filters", map[string]interface{}{"tables": headed})
	}

	return nil
}

func (s *SheetsSink) AppendRow(ctx context.Context, table string, row []interface{}) error {
	_, err := s.srv.Spreadsheets.Values.Append(s.sheetID, ColumnsRange(table, len(row)), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return classify(s.Name(), err, func(err error) *errors.StandardError {
			return errors.NewSinkAppendFailedError(table, err)
		})
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
