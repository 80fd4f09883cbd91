package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- BUSINESS TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS business SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON business TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON business TYPE string;
    DEFINE FIELD IF NOT EXISTS category ON business TYPE string;
    DEFINE FIELD IF NOT EXISTS address ON business TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS phone ON business TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS email ON business TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS image_urls ON business TYPE array<string> DEFAULT [];
    DEFINE FIELD IF NOT EXISTS moderation_score ON business TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS moderation_approved ON business TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS moderation_reason ON business TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS created_at ON business TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS updated_at ON business TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS business_category ON business FIELDS category;

    -- ==========================================================================
    -- CATEGORY TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS category SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS name ON category TYPE string;
    DEFINE FIELD IF NOT EXISTS icon ON category TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS sort_order ON category TYPE int DEFAULT 0;

    DEFINE INDEX IF NOT EXISTS category_name ON category FIELDS name UNIQUE;

    -- ==========================================================================
    -- IMAGE TABLE (listing photos, served under /files/<bucket>/<path>)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS image SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS bucket ON image TYPE string;
    DEFINE FIELD IF NOT EXISTS path ON image TYPE string;
    DEFINE FIELD IF NOT EXISTS content_type ON image TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON image TYPE bytes;
    DEFINE FIELD IF NOT EXISTS created_at ON image TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS image_location ON image FIELDS bucket, path UNIQUE;
`
