package db

// schema is the full DDL. Every statement is idempotent; EnsureSchema runs it
// on every start.
//
// The review-uniqueness rule (one review per user per listing) is deliberately
// NOT a constraint here: the service layer checks it before insert.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id          TEXT PRIMARY KEY,
    email       TEXT,
    nickname    TEXT,
    first_name  TEXT,
    last_name   TEXT,
    is_admin    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tutoring_providers (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    name                    TEXT NOT NULL,
    description             TEXT NOT NULL,
    subjects                TEXT[] NOT NULL DEFAULT '{}',
    grade_levels            TEXT[] NOT NULL DEFAULT '{}',
    delivery_mode           TEXT,
    city                    TEXT,
    state                   TEXT,
    website                 TEXT,
    email                   TEXT,
    phone                   TEXT,
    hourly_rate_min         DOUBLE PRECISION,
    hourly_rate_max         DOUBLE PRECISION,
    photo_url               TEXT
);

CREATE TABLE IF NOT EXISTS summer_camps (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    name                    TEXT NOT NULL,
    description             TEXT NOT NULL,
    categories              TEXT[] NOT NULL DEFAULT '{}',
    city                    TEXT,
    state                   TEXT,
    age_min                 INTEGER,
    age_max                 INTEGER,
    start_date              TIMESTAMPTZ,
    end_date                TIMESTAMPTZ,
    price                   DOUBLE PRECISION,
    is_overnight            BOOLEAN NOT NULL DEFAULT FALSE,
    website                 TEXT,
    photo_url               TEXT
);

CREATE TABLE IF NOT EXISTS internships (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    title                   TEXT NOT NULL,
    company_name            TEXT NOT NULL,
    description             TEXT NOT NULL,
    categories              TEXT[] NOT NULL DEFAULT '{}',
    city                    TEXT,
    state                   TEXT,
    is_remote               BOOLEAN NOT NULL DEFAULT FALSE,
    is_paid                 BOOLEAN NOT NULL DEFAULT FALSE,
    selectivity             TEXT,
    application_deadline    TIMESTAMPTZ,
    website                 TEXT
);

CREATE TABLE IF NOT EXISTS jobs (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    title                   TEXT NOT NULL,
    company_name            TEXT NOT NULL,
    description             TEXT NOT NULL,
    categories              TEXT[] NOT NULL DEFAULT '{}',
    city                    TEXT,
    state                   TEXT,
    employment_type         TEXT,
    salary_min              DOUBLE PRECISION,
    salary_max              DOUBLE PRECISION,
    minimum_age             INTEGER,
    website                 TEXT
);

CREATE TABLE IF NOT EXISTS services (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    name                    TEXT NOT NULL,
    description             TEXT NOT NULL,
    categories              TEXT[] NOT NULL DEFAULT '{}',
    city                    TEXT,
    state                   TEXT,
    website                 TEXT,
    email                   TEXT,
    phone                   TEXT,
    photo_url               TEXT
);

CREATE TABLE IF NOT EXISTS events (
    id                      BIGSERIAL PRIMARY KEY,
    user_id                 TEXT,
    is_approved             BOOLEAN NOT NULL DEFAULT FALSE,
    is_active               BOOLEAN NOT NULL DEFAULT TRUE,
    submitted_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    approved_at             TIMESTAMPTZ,
    contributor_nickname    TEXT,
    contributor_first_name  TEXT,
    contributor_last_name   TEXT,
    view_count              INTEGER NOT NULL DEFAULT 0,
    title                   TEXT NOT NULL,
    description             TEXT NOT NULL,
    categories              TEXT[] NOT NULL DEFAULT '{}',
    venue                   TEXT,
    city                    TEXT,
    state                   TEXT,
    starts_at               TIMESTAMPTZ,
    ends_at                 TIMESTAMPTZ,
    is_free                 BOOLEAN NOT NULL DEFAULT FALSE,
    website                 TEXT,
    photo_url               TEXT
);

CREATE TABLE IF NOT EXISTS reviews (
    id                 BIGSERIAL PRIMARY KEY,
    user_id            TEXT NOT NULL,
    listing_type       TEXT NOT NULL,
    listing_id         BIGINT NOT NULL,
    rating             INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    title              TEXT NOT NULL,
    content            TEXT,
    reviewer_nickname  TEXT,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_reviews_listing ON reviews (listing_type, listing_id);

CREATE TABLE IF NOT EXISTS thumbs_up (
    id            BIGSERIAL PRIMARY KEY,
    user_id       TEXT NOT NULL,
    listing_type  TEXT NOT NULL,
    listing_id    BIGINT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, listing_type, listing_id)
);

CREATE TABLE IF NOT EXISTS bookmarks (
    id            BIGSERIAL PRIMARY KEY,
    user_id       TEXT NOT NULL,
    listing_type  TEXT NOT NULL,
    listing_id    BIGINT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, listing_type, listing_id)
);

CREATE TABLE IF NOT EXISTS reports (
    id                BIGSERIAL PRIMARY KEY,
    reporter_user_id  TEXT NOT NULL,
    report_type       TEXT NOT NULL,
    item_type         TEXT NOT NULL,
    item_id           BIGINT NOT NULL,
    reason            TEXT NOT NULL,
    description       TEXT,
    is_resolved       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS view_tracking (
    tracking_id     TEXT NOT NULL,
    listing_type    TEXT NOT NULL,
    listing_id      BIGINT NOT NULL,
    last_viewed_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (tracking_id, listing_type, listing_id)
);
`
