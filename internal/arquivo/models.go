package arquivo

import "time"

// Arquivo is one upload batch of registration records sent in by a school.
// The counter columns break the batch down by validation outcome.
type Arquivo struct {
	ID                 int64     `json:"id"`
	CodigoEscola       int64     `json:"codigoEscola"`
	NomeArquivo        string    `json:"nomeArquivo"`
	DataUpload         time.Time `json:"dataUpload"`
	FinalData          time.Time `json:"finalData"`
	QuantidadeRegistro int       `json:"quantidadeRegistro"`
	Aptos              int       `json:"aptos"`
	SemDocumento       int       `json:"semDocumento"`
	ComCodigoSetps     int       `json:"comCodigoSetps"`
	ComErro            int       `json:"comErro"`
}

// ListFilter selects uploads for one school inside a date range. Both dates
// are inclusive; the service widens FinalData to the end of that day.
type ListFilter struct {
	CodigoEscola int64
	InicialData  time.Time
	FinalData    time.Time
}
