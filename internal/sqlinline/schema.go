package sqlinline

const QSchema = `--sql 4f1c2c6a-9d24-4c59-a6a5-7f2a6d3f9b01
create table if not exists campaigns (
    id               bigint primary key,
    creator          text   not null,
    accepted_asset   text   not null,
    title            text   not null,
    description      text   not null,
    image_url        text   not null,
    target_amount    bigint not null,
    deadline         bigint not null,
    amount_collected bigint not null
);

create table if not exists donations (
    campaign_id bigint not null,
    seq         bigint not null,
    donor       text   not null,
    net_amount  bigint not null,
    primary key (campaign_id, seq)
);

create table if not exists ledger_state (
    id             boolean primary key default true,
    campaign_count bigint  not null,
    change_fee     bigint  not null,
    fee_recipient  text    not null,
    constraint ledger_state_singleton check (id)
);
`

const QSeedState = `--sql 0a7d55e2-40cb-4f62-9b77-c3f0b1a4de12
insert into ledger_state (id, campaign_count, change_fee, fee_recipient)
values (true, 0, $1::bigint, $2::text)
on conflict (id) do nothing;
`
