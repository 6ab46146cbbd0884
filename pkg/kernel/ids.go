package kernel

type OfferID string

func NewOfferID(id string) OfferID { return OfferID(id) }
func (o OfferID) String() string   { return string(o) }
func (o OfferID) IsEmpty() bool    { return string(o) == "" }

type BatchID string

func NewBatchID(id string) BatchID { return BatchID(id) }
func (b BatchID) String() string   { return string(b) }
func (b BatchID) IsEmpty() bool    { return string(b) == "" }

type CvID string

func NewCvID(id string) CvID  { return CvID(id) }
func (c CvID) String() string { return string(c) }
func (c CvID) IsEmpty() bool  { return string(c) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }
