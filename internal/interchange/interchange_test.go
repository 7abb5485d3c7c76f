package interchange_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2024-06-30"

func TestDecodeOperations_Coercions(t *testing.T) {
	input := strings.Join([]string{
		"id,ticker,type,qty,date,mep,amount",
		"17,aapl,BUY,10,2024-01-15,1000,10000",
		"",
		"18, msft ,,3.7,,abc,\"1,500.5\"",
		"19,ggal,sell,2,2024-03-01,1100.5,2200",
		"20,ypf,BUY",
		",YPF,BUY,1,2024-04-01,0,50",
	}, "\n")

	ops, err := interchange.DecodeOperations(strings.NewReader(input), today)
	require.NoError(t, err)
	require.Len(t, ops, 4)

	assert.Equal(t, int64(17), ops[0].ID)
	assert.Equal(t, "AAPL", ops[0].Ticker)
	assert.Equal(t, model.OperationBuy, ops[0].Type)

	msft := ops[1]
	assert.Equal(t, "MSFT", msft.Ticker)
	assert.Equal(t, model.OperationBuy, msft.Type, "missing type defaults to BUY")
	assert.Equal(t, int64(3), msft.Qty, "fractional quantity truncates")
	assert.Equal(t, today, msft.Date, "missing date defaults to today")
	assert.True(t, msft.MEP.IsZero(), "unparsable rate reads as zero")
	assert.Equal(t, "1", msft.Amount.String(), "number parsing stops at the first invalid character")

	assert.Equal(t, model.OperationSell, ops[2].Type)
	assert.Equal(t, "1100.5", ops[2].MEP.String())

	assert.Equal(t, int64(0), ops[3].ID, "missing id is left for the caller")
}

func TestDecodeOperations_Malformed(t *testing.T) {
	input := "ticker,type,qty,amount\nAAPL,BUY,1,10\nMSFT,HOLD,1,10\n,BUY,1,10\nGGAL,BUY,-4,10\n"

	_, err := interchange.DecodeOperations(strings.NewReader(input), today)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)

	var rec *apperrors.MalformedRecordError
	require.True(t, errors.As(err, &rec))
	assert.Equal(t, 3, rec.Line)
	assert.Equal(t, "type", rec.Field)
	assert.Contains(t, err.Error(), "operations line 4: ticker")
	assert.Contains(t, err.Error(), "operations line 5: qty")
}

func TestDecode_HeaderErrors(t *testing.T) {
	_, err := interchange.DecodeOperations(strings.NewReader("symbol,qty\nAAPL,1\n"), today)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSVHeaders)

	_, err = interchange.DecodeAssets(strings.NewReader("id,value\n1,10\n"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSVHeaders)

	_, err = interchange.DecodeSymbols(strings.NewReader("ticker,ratio\n"))
	assert.ErrorIs(t, err, apperrors.ErrEmptyImport)

	_, err = interchange.DecodeSymbols(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrEmptyImport)

	_, err = interchange.Decode(strings.NewReader("ticker\nA\n"), model.Collection("funds"), today)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCollection)
}

func TestDecodeSymbols(t *testing.T) {
	input := "\ufeff\"Ticker\",\"Ratio\"\naapl,60\nggal,40\nAAPL,55.5\n"

	symbols, err := interchange.DecodeSymbols(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, symbols, 2)
	assert.Equal(t, "AAPL", symbols[0].Ticker)
	assert.Equal(t, "55.5", symbols[0].Ratio.String(), "later line wins")
	assert.Equal(t, "GGAL", symbols[1].Ticker)
}

func TestDecodeAssets(t *testing.T) {
	input := "id,name,value\n5,<b>House</b>,5000\n,Car,1500.75\n6,,10\n"

	_, err := interchange.DecodeAssets(strings.NewReader(input))
	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)

	assets, err := interchange.DecodeAssets(strings.NewReader("id,name,value\n5,<b>House</b>,5000\n,Car,1500.75\n"))
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "House", assets[0].Name)
	assert.Equal(t, int64(0), assets[1].ID)
	assert.Equal(t, "1500.75", assets[1].Value.String())

	_, err = interchange.DecodeAssets(strings.NewReader("name,value\n<b></b>,10\n"))
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord, "a name that is only markup is empty")

	assets, err = interchange.DecodeAssets(strings.NewReader("name,value\nCash & Bonds,300\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cash & Bonds", assets[0].Name)
}

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Symbols: []model.Symbol{{Ticker: "AAPL", Ratio: decimal.NewFromInt(60)}},
		Operations: []model.Operation{{
			ID: 1700000000001, Ticker: "AAPL", Type: model.OperationSell, Qty: 3,
			Date: "2024-02-10", MEP: decimal.RequireFromString("1500.25"), Amount: decimal.NewFromInt(4500),
		}},
		Assets: []model.Asset{{ID: 9, Name: "=HYPERLINK(\"x\")", Value: decimal.NewFromInt(5000)}},
	}
}

func TestEncode(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, interchange.Encode(&buf, snap, model.CollectionOperations))
	assert.Equal(t, "id,ticker,type,qty,date,mep,amount\n1700000000001,AAPL,SELL,3,2024-02-10,1500.25,4500\n", buf.String())

	buf.Reset()
	require.NoError(t, interchange.Encode(&buf, snap, model.CollectionAssets))
	assert.Equal(t, "id,name,value\n9,\"'=HYPERLINK(\"\"x\"\")\",5000\n", buf.String())

	buf.Reset()
	require.NoError(t, interchange.Encode(&buf, model.Snapshot{}, model.CollectionSymbols))
	assert.Equal(t, "ticker,ratio\n", buf.String())
}

func TestEncodeDecodeOperations(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, interchange.Encode(&buf, snap, model.CollectionOperations))

	ops, err := interchange.DecodeOperations(&buf, today)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, snap.Operations[0].ID, ops[0].ID)
	assert.True(t, snap.Operations[0].MEP.Equal(ops[0].MEP))
	assert.Equal(t, snap.Operations[0].Type, ops[0].Type)
}

func TestArchive(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		err := interchange.WriteArchive(&bytes.Buffer{}, model.Snapshot{}, time.Now())
		assert.ErrorIs(t, err, apperrors.ErrEmptyBackup)
	})

	t.Run("round trip omits empty collections", func(t *testing.T) {
		snap := sampleSnapshot()
		snap.Assets = nil

		var buf bytes.Buffer
		require.NoError(t, interchange.WriteArchive(&buf, snap, time.Now()))
		assert.True(t, interchange.IsArchive(buf.Bytes()))

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"portfolio_symbols.csv", "portfolio_operations.csv"}, names)

		got, present, err := interchange.ReadArchive(buf.Bytes(), today)
		require.NoError(t, err)
		assert.Equal(t, []model.Collection{model.CollectionSymbols, model.CollectionOperations}, present)
		assert.Len(t, got.Symbols, 1)
		assert.Len(t, got.Operations, 1)
		assert.Empty(t, got.Assets)
	})

	t.Run("files inside a folder are found", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		f, err := zw.Create("backup-2024/portfolio_assets.csv")
		require.NoError(t, err)
		_, err = f.Write([]byte("id,name,value\n1,Cash,100\n"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		got, present, err := interchange.ReadArchive(buf.Bytes(), today)
		require.NoError(t, err)
		assert.Equal(t, []model.Collection{model.CollectionAssets}, present)
		assert.Equal(t, "Cash", got.Assets[0].Name)
	})

	t.Run("not an archive", func(t *testing.T) {
		_, _, err := interchange.ReadArchive([]byte("ticker,ratio\n"), today)
		assert.ErrorIs(t, err, apperrors.ErrInvalidBackup)
	})
}

func TestSealer(t *testing.T) {
	key, err := interchange.GenerateKey()
	require.NoError(t, err)

	sealer, err := interchange.NewSealer(key)
	require.NoError(t, err)

	token, err := sealer.Seal([]byte("PK\x03\x04payload"))
	require.NoError(t, err)
	assert.False(t, interchange.IsArchive(token))

	plain, err := sealer.Open(token)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04payload", string(plain))

	otherKey, err := interchange.GenerateKey()
	require.NoError(t, err)
	other, err := interchange.NewSealer(otherKey)
	require.NoError(t, err)
	_, err = other.Open(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBackup)

	_, err = interchange.NewSealer("not-a-key")
	assert.Error(t, err)
}

func TestEncodeDecodeKeepsText(t *testing.T) {
	snap := model.Snapshot{
		Symbols: []model.Symbol{
			{Ticker: "BRK.B", Ratio: decimal.RequireFromString("12.5")},
			{Ticker: "YPF-D", Ratio: decimal.NewFromInt(20)},
		},
		Operations: []model.Operation{{
			ID: 1700000000002, Ticker: "YPF-D", Type: model.OperationBuy, Qty: 7,
			Date: "2024-03-01", MEP: decimal.NewFromInt(900), Amount: decimal.NewFromInt(6300),
		}},
		Assets: []model.Asset{
			{ID: 1, Name: "-Mortgage", Value: decimal.NewFromInt(-20000)},
			{ID: 2, Name: "Cash & Bonds", Value: decimal.NewFromInt(300)},
			{ID: 3, Name: "Tom's \"Beach\" flat", Value: decimal.NewFromInt(4000)},
			{ID: 4, Name: "'=quoted", Value: decimal.NewFromInt(1)},
			{ID: 5, Name: "+Savings", Value: decimal.NewFromInt(2)},
		},
	}

	check := func(t *testing.T, got model.Snapshot) {
		t.Helper()
		require.Len(t, got.Symbols, len(snap.Symbols))
		for i, s := range snap.Symbols {
			assert.Equal(t, s.Ticker, got.Symbols[i].Ticker)
			assert.True(t, s.Ratio.Equal(got.Symbols[i].Ratio))
		}
		require.Len(t, got.Operations, 1)
		assert.Equal(t, snap.Operations[0].Ticker, got.Operations[0].Ticker)
		assert.Equal(t, snap.Operations[0].Date, got.Operations[0].Date)
		require.Len(t, got.Assets, len(snap.Assets))
		for i, a := range snap.Assets {
			assert.Equal(t, a.ID, got.Assets[i].ID)
			assert.Equal(t, a.Name, got.Assets[i].Name)
			assert.True(t, a.Value.Equal(got.Assets[i].Value), "value of %s", a.Name)
		}
	}

	t.Run("csv", func(t *testing.T) {
		var got model.Snapshot
		for _, c := range []model.Collection{model.CollectionSymbols, model.CollectionOperations, model.CollectionAssets} {
			var buf bytes.Buffer
			require.NoError(t, interchange.Encode(&buf, snap, c))
			part, err := interchange.Decode(&buf, c, today)
			require.NoError(t, err, "collection %s", c)
			got.Symbols = append(got.Symbols, part.Symbols...)
			got.Operations = append(got.Operations, part.Operations...)
			got.Assets = append(got.Assets, part.Assets...)
		}
		check(t, got)
	})

	t.Run("archive", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, interchange.WriteArchive(&buf, snap, time.Now()))
		got, present, err := interchange.ReadArchive(buf.Bytes(), today)
		require.NoError(t, err)
		assert.Len(t, present, 3)
		check(t, got)
	})
}
