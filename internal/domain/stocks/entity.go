package stocks

// Sentiment classifies one text fragment
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SourceKind distinguishes where a sentiment sample came from
type SourceKind string

const (
	SourcePost    SourceKind = "post"
	SourceComment SourceKind = "comment"
)

// DataSource marks whether a snapshot holds real data or an error state
type DataSource string

const (
	DataSourceReddit DataSource = "reddit"
	DataSourceError  DataSource = "error"
)

// Comment is a single reply on a post. Comments are never persisted on
// their own, only attached to the post they belong to.
type Comment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Author     string  `json:"author"`
}

// Post is one forum submission, immutable once fetched. Identity is ID.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Selftext   string    `json:"selftext"`
	Score      int       `json:"score"`
	CreatedUTC float64   `json:"created_utc"`
	Subreddit  string    `json:"subreddit"`
	Permalink  string    `json:"permalink"`
	Author     string    `json:"author"`
	Comments   []Comment `json:"comments"`
}

// SampleSource records the origin of a sentiment sample
type SampleSource struct {
	Kind SourceKind `json:"type"`
	ID   string     `json:"id"`
	Text string     `json:"text"`
}

// SentimentSample is one classified text fragment. Weight carries the raw
// upvote score; post samples are doubled before weighting because the post
// is primary content rather than a reply.
type SentimentSample struct {
	Author    string       `json:"userId"`
	Sentiment Sentiment    `json:"sentiment"`
	Timestamp float64      `json:"timestamp"`
	Weight    int          `json:"score"`
	Source    SampleSource `json:"source"`
}

// StockAggregate accumulates everything observed for one symbol within a
// run. Posts are deduplicated by ID; mentions are not.
type StockAggregate struct {
	Symbol         string            `json:"symbol"`
	Mentions       int               `json:"mentions"`
	UniquePosts    int               `json:"uniquePosts"`
	UniqueUsers    int               `json:"uniqueUsers"`
	Samples        []SentimentSample `json:"userSentiments"`
	SentimentScore float64           `json:"sentimentScore"`
	TrendingScore  float64           `json:"trendingScore"`
	Posts          []Post            `json:"posts"`
}

// Snapshot is the single published result of one ingestion run. It is
// replaced wholesale; there is never more than one live snapshot.
type Snapshot struct {
	Stocks       []StockAggregate `json:"stocks"`
	LastUpdated  int64            `json:"lastUpdated"` // epoch milliseconds
	TotalSources int              `json:"totalSubreddits"`
	DataSource   DataSource       `json:"dataSource"`
}

// OK reports whether the snapshot holds real data rather than an error state
func (s *Snapshot) OK() bool {
	return s != nil && s.DataSource == DataSourceReddit
}
